// Package splitter provides quote- and escape-aware segmentation of stream
// text.
//
// Every grammar in meteor is built on top of Split: the implicit token stream
// splits on ";", the explicit meteor stream splits on the three-character
// delimiter ":;:", and path addressing splits on ":". A delimiter only acts as
// a boundary when it occurs outside an open double quote, so quoted values may
// embed any delimiter literally.
//
// Splitting and unquoting are separate steps. Split leaves quotes and escape
// sequences in place; Unquote decodes a quoted segment's escape grammar and is
// where invalid escapes and unterminated quotes become hard errors.
package splitter
