// Package dtdscan tokenizes the internal and external subsets of an XML
// 1.0 Document Type Definition. Given a character Source positioned just
// inside a DOCTYPE subset and a Container to resolve entity references
// against, a Scanner produces a lazy sequence of declaration tokens:
// processing instructions, comments, a text declaration, and entity,
// element, attribute-list, and notation declarations, expanding parameter-
// and general-entity references along the way.
//
// dtdscan does not build a document tree, does not validate a document
// against the declarations it scans, and does not resolve external system
// identifiers to their content; those are the job of a DTD builder layered
// on top of it.
package dtdscan
