// burntest is a golden-output test harness for the burn interpreter.
//
// Every file ending in .burntest below the given paths is a fixture: a
// program, a delimiter line, and the output the program must produce.
//
//	print( 1 + 1 )
//	/* OUTPUTS
//	2
//
// burntest pipes the program to "build/bin/burn -q -", captures stdout and
// stderr together, and compares the capture with the expected section byte
// for byte. Directories are searched recursively; with no paths the current
// directory is used.
//
// Example:
//
//	burntest --show-output tests/
//
// Output:
//
//	tests/arithmetic.burntest ... OK
//	2
//	tests/strings.burntest ... FAIL
//		- "ab"
//		+ "ba"
//	"ba"
//	passed 1, failed 1
//
// The exit status is 1 if a fixture failed or a path did not exist.
package main
