package mcp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/strogmv/notify-mcp/internal/domain"
)

// requestFromArguments maps tool arguments onto a Request. Values of an
// unexpected type are converted where that is unambiguous and otherwise left
// for the backend to reject; nothing here fails.
func requestFromArguments(args map[string]any) domain.Request {
	return domain.Request{
		Title:         stringArg(args, "title"),
		Message:       stringArg(args, "message"),
		Sound:         boolArg(args, "sound"),
		Wait:          boolArg(args, "wait"),
		Icon:          stringArg(args, "icon"),
		Timeout:       numberArg(args, "timeout"),
		Urgency:       stringArg(args, "urgency"),
		AppID:         stringArg(args, "appID"),
		Actions:       stringsArg(args, "actions"),
		CloseLabel:    stringArg(args, "closeLabel"),
		DropdownLabel: stringArg(args, "dropdownLabel"),
		Reply:         boolArg(args, "reply"),
		Type:          stringArg(args, "type"),
		Install:       stringArg(args, "install"),
		Sender:        stringArg(args, "sender"),
		Category:      stringArg(args, "category"),
		Hint:          stringArg(args, "hint"),
		AppName:       stringArg(args, "app-name"),
		ShortcutPath:  stringArg(args, "shortcutPath"),
		Name:          stringArg(args, "name"),
		Host:          stringArg(args, "host"),
		Port:          numberArg(args, "port"),
		Sticky:        boolArg(args, "sticky"),
		Label:         stringArg(args, "label"),
		Priority:      numberArg(args, "priority"),
	}
}

func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []any, map[string]any:
		b, _ := json.Marshal(v)
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

func boolArg(args map[string]any, key string) *bool {
	var b bool
	switch v := args[key].(type) {
	case bool:
		b = v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		b = parsed
	case float64:
		b = v != 0
	default:
		return nil
	}
	return &b
}

func numberArg(args map[string]any, key string) *float64 {
	var f float64
	switch v := args[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func stringsArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
