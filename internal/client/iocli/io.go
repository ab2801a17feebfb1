// Package iocli abstracts the terminal so CLI commands can be driven by
// scripted input and captured output in tests.
package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal surface the CLI commands talk to. ReadPassword must
// not echo the typed characters.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
