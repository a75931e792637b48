package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	Out    io.Writer
	ErrOut io.Writer
}

// NewFormatter reads the --json and --quiet flags of cmd and writes to its
// output streams
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			_, err := fmt.Fprintf(f.Out, "%d\n", idGetter.GetID())
			return err
		}
	}

	if f.JSON {
		return f.encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	_, err := fmt.Fprintf(f.Out, "%+v\n", data)
	return err
}

// Result writes data under key in JSON mode, its ID in quiet mode and
// calls human otherwise
func (f *OutputFormatter) Result(key string, data any, human func(w io.Writer) error) error {
	if f.JSON {
		return f.encode(map[string]any{
			"success": true,
			key:       data,
		})
	}
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			_, err := fmt.Fprintf(f.Out, "%d\n", idGetter.GetID())
			return err
		}
		return nil
	}
	return human(f.Out)
}

// IDs prints one ID per line, for quiet list output
func (f *OutputFormatter) IDs(ids []int) error {
	for _, id := range ids {
		if _, err := fmt.Fprintf(f.Out, "%d\n", id); err != nil {
			return err
		}
	}
	return nil
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return f.encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.ErrOut, "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.ErrOut, "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it as a *CodedError with the matching code
func (f *OutputFormatter) Fail(err error) error {
	code := ExitCode(err)
	_ = f.Error(errorCode(code), err.Error())
	return &CodedError{Code: code, Err: err}
}

func (f *OutputFormatter) encode(v any) error {
	enc := json.NewEncoder(f.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
