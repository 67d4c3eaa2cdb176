package cp

// Version is the current version of this module.
const Version = "0.1.0"
