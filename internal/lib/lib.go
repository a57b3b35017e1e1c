// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It currently holds utils, the lenient JSON scalar decoding used by
// request payloads.
package lib
