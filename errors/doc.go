/*
Package errors implements the error handling used by all milestone packages.

Errors are classified by root errors. Each root error carries a unique ABCI
code and is declared once with Register. Extensions that need their own
classification (for example x/multisig or x/project) register additional
root errors in their errors.go file.

Runtime errors are created by wrapping a root error:

	return errors.Wrapf(errors.ErrNotFound, "project %X", id)

and tested with the root error's Is method:

	if errors.ErrNotFound.Is(err) { ... }

The innermost Wrap attaches a stack trace. Use fmt verb %+v to print it.
*/
package errors
