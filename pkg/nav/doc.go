// Package nav drives plain-text terminal menus that can be fed scripted input.
//
// A Context resolves every prompt to a Command: it pops the scripted queue
// filled by Execute, and reads a live line once the queue is empty. Scripted
// entries use a small wire format:
//
//	"a"      replayed silently
//	"a\n\n"  prompt and input shown, no pause
//	"a\n."   prompt and input shown, then wait for Enter
//	"a\n?"   offered to the user, who may accept it or type over it
//
// Menus are declared with Nav (looping) or Pick (one-shot) and run with
// Context.Run. The reserved key "back" leaves the innermost menu. Scripted
// input a menu cannot match is returned as an *AutomationError instead of
// being retried.
package nav
