/*
Package hmm reads and writes profile hidden Markov models in the two
incompatible generations of the HMMER plain-text format. Both
generations are parsed into the same Profile type, which stores every
matrix twice: once in probability space and once in the generation's
native score space. The two planes are filled in together at parse
time and never recomputed from one another afterwards.

A Profile is immutable after Read returns it. Deriving a column range
with Slice produces an independent copy.
*/
package hmm
