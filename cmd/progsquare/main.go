// Command progsquare enumerates the progressive perfect squares below 10^12
// and prints their square roots followed by their sum.
package main

import (
	"context"
	"os"

	"github.com/agbru/progsquare/internal/app"
	apperrors "github.com/agbru/progsquare/internal/errors"
)

func main() {
	os.Exit(run())
}

// run drives the application and returns its exit code. Separated from
// main so deferred cleanup still executes before os.Exit.
func run() int {
	// Handle the version flag before configuration parsing so it works in
	// any position.
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	a, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}

	return a.Run(context.Background(), os.Stdout)
}
