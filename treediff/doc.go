// Package treediff computes flat change lists between value trees.
//
// A diff is a sequence of Change records in tree order, each naming a
// path, a kind (add, delete, modify) and the values involved. Field
// sequences and positional sequences align through rune based text
// diffing, which keeps changes local when fields or elements move;
// sequences of identified records align by their identity field
// instead.
package treediff
