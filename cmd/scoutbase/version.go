package main

// version is the CLI version reported by --version.
const version = "0.3.0"
