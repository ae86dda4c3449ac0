/*
Package fold provides incremental, single-pass accumulators and the keyed
demultiplexing engine built on top of them.

A Fold consumes one element at a time and eventually produces a result. Its
contract is four independently supplied functions: an initial state producer
(which may itself be immediately terminal), a step function advancing the
state by one element, a repeatable non-consuming extract used for snapshots
and scans, and a final function that produces the result and releases the
state. A Step is either Partial (more input wanted) or Done (result ready).

Feeding a fold after it reported done is a programming error; the Run driver
traps it with a panic rather than silently accepting more input.

The demux engine (Demux, Classify and the aggregation combinators built on
them) routes a keyed input stream to one fold instance per distinct key,
creating instances on first sight and retiring or restarting them when they
finish:

	freq := fold.Drive(fold.Frequency[int](), []int{1, 1, 2, 3, 3, 3})
	n, _ := freq.Lookup(3) // 3

Classify keeps the first completed result per key and drops later inputs for
that key; Demux starts a brand-new instance when a finished key reappears.
*/
package fold
