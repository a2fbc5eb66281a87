package gateway

import (
	"strconv"
	"strings"
)

const (
	secondsPlaceholder = "{seconds}"
	minutesPlaceholder = "{minutes}"
)

// CommandSet holds argv templates. Arguments may contain {seconds} or
// {minutes}; minutes are rounded up.
type CommandSet struct {
	Schedule []string
	Cancel   []string
}

var platformCommands = map[string]CommandSet{
	"windows": {
		Schedule: []string{"shutdown", "/s", "/t", secondsPlaceholder},
		Cancel:   []string{"shutdown", "/a"},
	},
	"linux": {
		Schedule: []string{"shutdown", "-h", "+" + minutesPlaceholder},
		Cancel:   []string{"shutdown", "-c"},
	},
	"darwin": {
		Schedule: []string{"shutdown", "-h", "+" + minutesPlaceholder},
		Cancel:   []string{"killall", "shutdown"},
	},
}

func init() {
	// BSD shutdown(8) takes the same "+minutes" form as Linux. There is no
	// -c, so the pending shutdown process is killed instead.
	for _, goos := range []string{"freebsd", "openbsd", "netbsd"} {
		platformCommands[goos] = CommandSet{
			Schedule: []string{"shutdown", "-p", "+" + minutesPlaceholder},
			Cancel:   []string{"pkill", "-x", "shutdown"},
		}
	}
}

// CommandsFor returns the native commands for goos.
func CommandsFor(goos string) (CommandSet, error) {
	c, ok := platformCommands[goos]
	if !ok {
		return CommandSet{}, ErrUnsupportedPlatform
	}
	return CommandSet{
		Schedule: append([]string(nil), c.Schedule...),
		Cancel:   append([]string(nil), c.Cancel...),
	}, nil
}

func (c CommandSet) ScheduleArgs(seconds int) []string {
	return expand(c.Schedule, seconds)
}

func (c CommandSet) CancelArgs() []string {
	return expand(c.Cancel, 0)
}

// MinutesCeil converts a delay to whole minutes, rounding up.
func MinutesCeil(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}

func expand(template []string, seconds int) []string {
	r := strings.NewReplacer(
		secondsPlaceholder, strconv.Itoa(seconds),
		minutesPlaceholder, strconv.Itoa(MinutesCeil(seconds)),
	)
	argv := make([]string, len(template))
	for i, arg := range template {
		argv[i] = r.Replace(arg)
	}
	return argv
}
