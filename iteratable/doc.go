/*
Package iteratable implements an iteratable container data structure.

Set is a special-purpose set type, suitable mainly for implementing
algorithms around scanners, parsers, and chart-based engines. These kinds
of algorithms are often more straightforward to describe as set
constructions and operations than as explicit loops over slices.

Unusually, the set operations are destructive: all but Copy and
Difference change the receiver in place!
*/
package iteratable
