package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"chainsel/internal/chain"
)

// WidgetOptions is the decoded form of the options a chain hands to each
// terminal widget.
type WidgetOptions struct {
	Title             string `mapstructure:"title"`
	NoneSelectedText  string `mapstructure:"none_selected_text"`
	SelectedText      string `mapstructure:"selected_text"`
	SelectedList      int    `mapstructure:"selected_list"`
	MinWidth          int    `mapstructure:"min_width"`
	Filter            bool   `mapstructure:"filter"`
	FilterPlaceholder string `mapstructure:"filter_placeholder"`
	Height            int    `mapstructure:"height"`
}

// DefaultWidgetOptions returns the options used for keys a chain leaves
// unset.
func DefaultWidgetOptions() WidgetOptions {
	return WidgetOptions{
		NoneSelectedText:  "Select options",
		SelectedText:      "# of # selected",
		SelectedList:      0,
		MinWidth:          24,
		FilterPlaceholder: "filter",
		Height:            10,
	}
}

// DecodeOptions overlays opts on the defaults. Unknown keys are ignored so
// a chain may carry options meant for other adapters.
func DecodeOptions(opts chain.Options) (WidgetOptions, error) {
	out := DefaultWidgetOptions()
	if len(opts) == 0 {
		return out, nil
	}
	if err := mapstructure.Decode(map[string]any(opts), &out); err != nil {
		return WidgetOptions{}, fmt.Errorf("widget options: %w", err)
	}
	if out.MinWidth < 0 || out.Height < 0 || out.SelectedList < 0 {
		return WidgetOptions{}, fmt.Errorf("widget options: negative size in %+v", out)
	}
	return out, nil
}

// summary renders the header line describing the current selection.
func (o WidgetOptions) summary(selected []string, total int) string {
	switch {
	case len(selected) == 0:
		return o.NoneSelectedText
	case len(selected) <= o.SelectedList:
		return strings.Join(selected, ", ")
	}
	text := strings.Replace(o.SelectedText, "#", strconv.Itoa(len(selected)), 1)
	return strings.Replace(text, "#", strconv.Itoa(total), 1)
}
