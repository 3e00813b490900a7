// Package prompt drives interactive form filling in the terminal. The Driver
// interface isolates the survey-backed implementation so the walk over a
// template's sections and fields can be exercised with a scripted fake.
package prompt
