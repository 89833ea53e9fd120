// Package list provides a generic singly-linked list with an optional
// per-element destroy hook.
//
// Elements are stored by value in nodes owned by the list. If T is itself a
// pointer or a view into other memory, only the reference is owned; releasing
// what it refers to is the job of the destroy hook.
package list
