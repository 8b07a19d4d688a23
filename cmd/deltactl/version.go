package main

// DELTATERM_VERSION is stamped by the release build via ldflags.
var DELTATERM_VERSION = ""
