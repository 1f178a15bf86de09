// Package drill implements the word queue at the heart of vocabulary practice.
//
// A language's words form a single queue. The word at the front (the head)
// is the one the learner is asked to translate next. After every answer the
// head word is moved deeper into the queue: a correct answer doubles the
// word's strength and pushes it that many places back, a wrong answer resets
// the strength and moves it back a single place so it returns almost at once.
//
// Persisted words carry a next id, so the queue is stored as a linked list.
// BuildChain turns those records into a Chain, Scheduler.Advance applies one
// answer to it, and Flatten turns it back into records with recomputed links.
// Everything in this package is pure and free of I/O.
package drill
