package session

import (
	"strings"
	"time"

	"github.com/Laetus/mvv-bot/internal/domain"
)

// EventKind classifies an inbound chat event.
type EventKind int

const (
	EventText EventKind = iota
	EventLocation
	EventOther
)

// Event is one inbound chat event, already stripped of any transport
// specifics.
type Event struct {
	ChatID      int64
	Kind        EventKind
	Text        string          // valid for EventText
	Location    domain.Location // valid for EventLocation
	ContentType string          // raw content kind, for EventOther
	Timestamp   time.Time
}

// Reply is one outbound chat message.
type Reply struct {
	Text     string
	Markdown bool
	MainMenu bool // attach the action keyboard
}

// Actions is what one dispatch step asks the surrounding handler to do.
type Actions struct {
	Replies []Reply
	// Query, when set, runs the departure pipeline at this location and
	// appends its blocks (or a failure message) after Replies.
	Query *domain.Location
}

// Dispatch applies one inbound event to the profile and returns the
// resulting actions. It mutates only the given profile and performs no
// I/O; every event increments the message count.
func Dispatch(p *domain.Profile, ev Event) Actions {
	p.MsgCount++
	p.LastContact = ev.Timestamp.UTC()

	switch ev.Kind {
	case EventText:
		return dispatchText(p, strings.TrimSpace(ev.Text))
	case EventLocation:
		return dispatchLocation(p, ev.Location)
	default:
		return Actions{Replies: []Reply{{Text: textNirvana(ev.ContentType)}}}
	}
}

func dispatchText(p *domain.Profile, text string) Actions {
	switch {
	case strings.HasPrefix(text, "/start"):
		// Restart drops any half-finished flow.
		p.Pending = nil
		return Actions{Replies: []Reply{
			{Text: textWelcome, Markdown: true},
			{Text: textMenuPrompt, MainMenu: true},
		}}

	case strings.HasPrefix(text, "/help"):
		return Actions{Replies: []Reply{{Text: textHelp, Markdown: true}}}

	case strings.HasPrefix(text, "/dep"):
		if p.Home == nil {
			return Actions{Replies: []Reply{{Text: textNoHome}}}
		}
		home := *p.Home
		return Actions{Query: &home}

	case strings.HasPrefix(text, "/sethome"):
		p.Pending = &domain.PendingAction{Kind: domain.PendingSetHome, SinceMsgCount: p.MsgCount}
		return Actions{Replies: []Reply{{Text: textSetHomePrompt}}}

	case strings.HasPrefix(text, "/"):
		return Actions{Replies: []Reply{{Text: textUnknownCommand}}}

	default:
		return Actions{Replies: []Reply{{Text: textNotTalkative}}}
	}
}

func dispatchLocation(p *domain.Profile, loc domain.Location) Actions {
	var replies []Reply
	if p.AwaitingHome() {
		home := loc
		p.Home = &home
		p.Pending = nil
		replies = append(replies, Reply{Text: textHomeUpdated})
	}
	// An ad-hoc location query never touches the stored home location.
	query := loc
	return Actions{Replies: replies, Query: &query}
}
