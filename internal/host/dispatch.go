package host

import (
	"context"
	"fmt"
	"strings"
)

// Dispatch runs the named command. Command names are case-insensitive;
// media_next and media_previous are aliases of next and previous.
func (s *Session) Dispatch(ctx context.Context, command string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "activate":
		return s.Activate(ctx)
	case "next", "media_next":
		return s.Next(ctx)
	case "previous", "media_previous":
		return s.Previous(ctx)
	case "jump":
		return s.JumpToAnchor(ctx)
	case "refresh":
		return s.Refresh(ctx)
	case "deactivate":
		return s.Deactivate(), nil
	default:
		return Result{Command: command, Index: -1}, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

// Commands lists the names Dispatch accepts.
func Commands() []string {
	return []string{"activate", "next", "media_next", "previous", "media_previous", "jump", "refresh", "deactivate"}
}
