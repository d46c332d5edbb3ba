/*
Package parakeet is a recognizer/parser for a context-sensitive extension of
context-free grammars. Each substitution rule optionally carries a left and
right context expectation (positive or negative), and the parser produces
every complete derivation spanning a given input.

The package is organized as follows:

■ grammar: terminal and substitution rules, context expectations, and the
grammar's registration/indexing.

■ scan: the terminal-rule scanner adapter, applying an (opaque) regular
expression engine against the input.

■ iteratable: a destructive set type used by the chart for bookkeeping.

■ earley: the match-graph chart engine itself, complete and forward
matches, the adjacency/compatibility predicate, the feed/settle interaction
operations, the chart and agenda, and the parser driver.

The base package holds the Polarity type and the error types shared across
all of the above.
*/
package parakeet
