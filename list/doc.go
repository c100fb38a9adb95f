// Package list implements a lock-free, intrusive doubly linked list.
//
// Elements embed Node directly; the list never allocates or frees node
// memory, it only reads and writes the two linkage words (next, prev)
// inside a Node. Every mutator is lock-free: a retrying CAS is how an
// operation discovers and reacts to a concurrent change, never a mutex.
//
// A Go runtime has no portable way to steal spare bits out of a real
// pointer the way the C original does for its tagged pointer (a moving
// collector scanning a bit-stuffed word as a pointer would corrupt
// memory), so the (pointer, tag) pair here is boxed in an immutable
// struct and swapped as a unit via atomic.Pointer. See linkage.go.
package list
