// Package ebtree's exported surface (NodeCore, Link, Root, and the
// Attach/Splice/InsertDupBelow helpers) is deliberately key-agnostic: it
// knows how to walk, splice, and delete, but nothing about what a bit index
// means for any particular key family. intkey and bytekey each provide
// their own descent logic on top of this package and only ever touch
// NodeCore through the exported methods here.
package ebtree
