package brewin

import "testing"

func TestInheritedMethodsAndFields(t *testing.T) {
	source := `(class person
  (field string name "jane")
  (method void set_name ((string n)) (set name n))
  (method string get_name () (return name)))
(class student inherits person
  (field int beers 3)
  (method void set_beers ((int g)) (set beers g))
  (method int get_beers () (return beers)))
(class main
  (field student s null)
  (method void main ()
    (begin
      (set s (new student))
      (print (call s get_name) " has " (call s get_beers) " beers")
      (call s set_name "julin")
      (call s set_beers 010)
      (print (call s get_name) " has " (call s get_beers) " beers"))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "jane has 3 beers", "julin has 10 beers")
}

func TestSuperCallRunsAncestorMethod(t *testing.T) {
	source := `(class person
  (field string name "anonymous")
  (method void set_name ((string n)) (set name n))
  (method void say_something () (print name " says hi")))
(class student inherits person
  (method void say_something ()
    (begin
      (print "first")
      (call super say_something)
      (print "second"))))
(class main
  (field student s null)
  (method void main ()
    (begin
      (set s (new student))
      (call s set_name "julin")
      (call s say_something))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "first", "julin says hi", "second")
}

func TestSuperResolvesFromDefiningClass(t *testing.T) {
	source := `(class organism
  (method string taxonomy () (return "Eukaryota")))
(class animal inherits organism
  (method string taxonomy () (return (+ (call super taxonomy) " Animalia"))))
(class mammal inherits animal
  (method string taxonomy () (return (+ (call super taxonomy) " Mammalia"))))
(class human inherits mammal
  (method string taxonomy () (return (+ (call super taxonomy) " Homo"))))
(class cyborg inherits human
  (method string taxonomy () (return (+ (call super taxonomy) " Cyberneticus"))))
(class main
  (method void main ()
    (print (call (new cyborg) taxonomy))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "Eukaryota Animalia Mammalia Homo Cyberneticus")
}

func TestOverloadsAcrossHierarchy(t *testing.T) {
	source := `(class foo
  (method void f ((int x)) (print x)))
(class bar inherits foo
  (method void f ((int x) (int y)) (print x " " y)))
(class main
  (field bar b null)
  (method void main ()
    (begin
      (set b (new bar))
      (call b f 10)
      (call b f 10 20))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "10", "10 20")
}

func TestDynamicDispatchThroughBaseReference(t *testing.T) {
	source := `(class B
  (method string M () (return "base")))
(class D inherits B
  (method string M () (return "derived")))
(class DD inherits D
  (method string MM () (return "double derived")))
(class main
  (field B f1 null)
  (method string m ((B p1) (D p2)) (return (+ (call p1 M) (call p2 M))))
  (method void main ()
    (begin
      (set f1 (new DD))
      (print (call f1 M))
      (print (call me m (new D) (new DD))))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "derived", "derivedderived")
}

func TestDefaultReturnValues(t *testing.T) {
	source := `(class person
  (method string gimme () (return "here you go")))
(class main
  (method int i () (print "hi"))
  (method string s () (return))
  (method bool b ((bool q)) (if q (return) (return true)))
  (method person p () (return))
  (method int value_or_zero ((int q))
    (if (< q 0)
      (print "negative")
      (return q)))
  (method void main ()
    (begin
      (print (call me i))
      (print "[" (call me s) "]")
      (print (call me b false) " " (call me b true))
      (print (== (call me p) null))
      (print (call me value_or_zero 10))
      (print (call me value_or_zero -10)))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "hi", "0", "[]", "true false", "true", "10", "negative", "0")
}

func TestDefaultObjectReturnFaultsOnCall(t *testing.T) {
	source := `(class person
  (method string gimme () (return "here you go")))
(class main
  (method person house ()
    (return))
  (method void main ()
    (print (call (call me house) gimme))))`
	requireErrorAt(t, ModeExtended, source, FaultError, 7)
}

func TestLetScopes(t *testing.T) {
	source := `(class main
  (field int y 100)
  (method void foo ((int x))
    (begin
      (print x)
      (let ((bool x true) (int y 5) (string z "bar"))
        (print x)
        (print y)
        (set y 6)
        (let ((string z "inner"))
          (print z))
        (print y " " z))
      (print x " " y)))
  (method void main ()
    (call me foo 10)))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "10", "true", "5", "inner", "6 bar", "10 100")
}

func TestLetScopeEndsWithReturn(t *testing.T) {
	source := `(class main
  (method int f ()
    (let ((int x 1))
      (return x)))
  (method void main ()
    (let ((int x 7))
      (print (call me f))
      (print x))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "1", "7")
}

func TestObjectComparisons(t *testing.T) {
	source := `(class person
  (method void noop () (return)))
(class robot inherits person
  (method void beep () (return)))
(class dog
  (method void bark () (return)))
(class main
  (field person o1 null)
  (field person o2 null)
  (field robot o3 null)
  (field dog d null)
  (method void main ()
    (begin
      (print (== o1 o3) " " (== d o1) " " (== null d))
      (set o1 (new person))
      (set o2 o1)
      (print (== o1 o2))
      (set o2 (new person))
      (print (== o1 o2))
      (set o3 (new robot))
      (set o1 o3)
      (print (== o1 o3) " " (!= o3 o1)))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "true true true", "true", "false", "true false")
}

func TestClassNamedLikePrimitive(t *testing.T) {
	source := `(class int
  (method string do () (return "brokey")))
(class main
  (method void main ()
    (print (call (new int) do))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "brokey")
}

func TestMainMayReturnValue(t *testing.T) {
	source := `(class main
  (method int main ()
    (while true
      (begin
        (print "hi")
        (return 0)))))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "hi")
}

func TestInheritedMainRunsOnMainInstance(t *testing.T) {
	source := `(class base
  (method void main () (call me hello))
  (method void hello () (print "base")))
(class main inherits base
  (field int x 7)
  (method void hello () (print "main " x)))`
	output := runScript(t, ModeExtended, source)
	requireOutput(t, output, "main 7")
}

func TestExtendedErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
		line   int
	}{
		{
			name: "subclass reads ancestor field",
			source: `(class human
  (field string genus " Homo")
  (method string taxonomy () (return genus)))
(class cyborg inherits human
  (method string taxonomy () (return (+ (call super taxonomy) genus))))
(class main
  (method void main ()
    (print (call (new cyborg) taxonomy))))`,
			kind: NameError,
			line: 5,
		},
		{
			name: "super without superclass",
			source: `(class main
  (method void main ()
    (call super main)))`,
			kind: NameError,
			line: 3,
		},
		{
			name: "assign string to int parameter",
			source: `(class main
  (method void foo ((int a) (string b))
    (set a b))
  (method void main ()
    (call me foo 17 "kevin")))`,
			kind: TypeError,
			line: 3,
		},
		{
			name: "downcast assignment",
			source: `(class person
  (method void speak () (print "ih")))
(class student inherits person
  (method void scream () (print "AAAH")))
(class main
  (method void foo ((student s) (person p))
    (set s p))
  (method void main ()
    (call me foo (new student) (new person))))`,
			kind: TypeError,
			line: 7,
		},
		{
			name: "argument not assignable to parameter",
			source: `(class B
  (method string M () (return "base")))
(class D inherits B
  (method string M () (return "derived")))
(class main
  (method string m ((B p1) (D p2)) (return (+ (call p1 M) (call p2 M))))
  (method void main ()
    (print (call me m (new D) (new B)))))`,
			kind: TypeError,
			line: 8,
		},
		{
			name: "compare unrelated objects",
			source: `(class person
  (method void speak () (print "ih")))
(class dog
  (method void run () (print "woof")))
(class main
  (method void foo ((person a) (dog b))
    (if (== a b)
      (print "same")))
  (method void main ()
    (call me foo (new person) (new dog))))`,
			kind: TypeError,
			line: 7,
		},
		{
			name: "compare siblings",
			source: `(class person
  (method void speak () (print "ih")))
(class student inherits person
  (method void study () (print "hmm")))
(class professor inherits person
  (method void lecture () (print "blah")))
(class main
  (method void foo ((student a) (professor b))
    (if (== a b)
      (print "same")))
  (method void main ()
    (call me foo (new student) (new professor))))`,
			kind: TypeError,
			line: 9,
		},
		{
			name: "return value from void method",
			source: `(class main
  (method void foo () (return 5))
  (method void main () (call me foo)))`,
			kind: TypeError,
			line: 2,
		},
		{
			name: "return wrong primitive",
			source: `(class main
  (method int foo () (return "five"))
  (method void main () (print (call me foo))))`,
			kind: TypeError,
			line: 2,
		},
		{
			name: "return type seen by caller",
			source: `(class a
  (method int n () (return 5)))
(class b inherits a
  (method int n () (return 6)))
(class main
  (field b obj null)
  (method a get_a ()
    (return null))
  (method void main ()
    (begin
      (set obj (call me get_a)))))`,
			kind: TypeError,
			line: 11,
		},
		{
			name: "let duplicate",
			source: `(class main
  (method void main ()
    (let ((string name "") (string name ""))
      (print name))))`,
			kind: NameError,
			line: 3,
		},
		{
			name: "let variable out of scope",
			source: `(class main
  (method void foo ()
    (begin
      (let ((int y 5))
        (print y))
      (print y)))
  (method void main ()
    (call me foo)))`,
			kind: NameError,
			line: 6,
		},
		{
			name: "let initializer type mismatch",
			source: `(class main
  (method void main ()
    (let ((int x "one"))
      (print x))))`,
			kind: TypeError,
			line: 3,
		},
		{
			name: "let unknown type",
			source: `(class main
  (method void main ()
    (let ((widget w null))
      (print "x"))))`,
			kind: TypeError,
			line: 3,
		},
		{
			name: "inputi into string field",
			source: `(class main
  (field string s "")
  (method void main ()
    (inputi s)))`,
			kind: TypeError,
			line: 4,
		},
		{
			name: "while condition not bool",
			source: `(class main
  (field int x 0)
  (method void main ()
    (begin
      (set x 14)
      (while 1
        (set x (- x 1))))))`,
			kind: TypeError,
			line: 6,
		},
		{
			name: "condition changes type",
			source: `(class main
  (field int state 0)
  (method bool cond ()
    (begin
      (set state (% (+ state 1) 2))
      (return (== state 0))))
  (method void main ()
    (if (call me cond)
      (print "even")
      (print (+ "odd" 1)))))`,
			kind: TypeError,
			line: 10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			requireErrorAt(t, ModeExtended, tc.source, tc.kind, tc.line)
		})
	}
}
