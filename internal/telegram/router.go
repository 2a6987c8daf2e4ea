package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Laetus/mvv-bot/internal/domain"
	"github.com/Laetus/mvv-bot/internal/session"
)

const mailboxSize = 16

// Handler processes one inbound event and returns the replies to send.
// session.Handler implements it.
type Handler interface {
	Handle(ctx context.Context, ev session.Event) []session.Reply
}

// Router adapts Telegram updates to session events and serializes them per
// chat: each chat id gets its own worker goroutine with a mailbox, so at
// most one event per chat is in flight while different chats run
// concurrently. Workers exit after the idle timeout; the profile itself
// survives in the store.
type Router struct {
	bot         *tgbotapi.BotAPI
	log         *zap.Logger
	handler     Handler
	idleTimeout time.Duration

	mu        sync.Mutex
	mailboxes map[int64]chan tgbotapi.Update
	wg        sync.WaitGroup
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, handler Handler, idleTimeout time.Duration) *Router {
	return &Router{
		bot:         bot,
		log:         log,
		handler:     handler,
		idleTimeout: idleTimeout,
		mailboxes:   make(map[int64]chan tgbotapi.Update),
	}
}

// HandleUpdate enqueues an update on its chat's session worker, starting
// one if none is running. The enqueue happens under the same lock that
// guards session close, so an update is either queued on a live worker or
// handed to a fresh one, never stranded on a dead mailbox.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	chatID, ok := chatIDOf(upd)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mailbox, running := r.mailboxes[chatID]
	if !running {
		mailbox = make(chan tgbotapi.Update, mailboxSize)
		r.mailboxes[chatID] = mailbox
		r.wg.Add(1)
		go r.runSession(ctx, chatID, mailbox)
	}

	select {
	case mailbox <- upd:
	default:
		r.log.Warn("session mailbox full, dropping update", zap.Int64("chat_id", chatID))
	}
}

// Wait blocks until all session workers have exited. Call after the
// update source has stopped and the context passed to HandleUpdate is
// canceled.
func (r *Router) Wait() {
	r.wg.Wait()
}

// runSession is the per-chat worker loop. Every update for a chat is
// handled by the goroutine that owns its mailbox; the worker only
// unregisters when the mailbox is provably empty, so two handlers can
// never run for the same chat at once.
func (r *Router) runSession(ctx context.Context, chatID int64, mailbox chan tgbotapi.Update) {
	defer r.wg.Done()
	r.log.Debug("session opened", zap.Int64("chat_id", chatID))
	idle := time.NewTimer(r.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			delete(r.mailboxes, chatID)
			r.mu.Unlock()
			if queued := len(mailbox); queued > 0 {
				r.log.Debug("dropping queued updates on shutdown",
					zap.Int64("chat_id", chatID), zap.Int("count", queued))
			}
			return

		case <-idle.C:
			r.mu.Lock()
			if len(mailbox) > 0 {
				// An update raced in; stay alive and handle it.
				r.mu.Unlock()
				idle.Reset(r.idleTimeout)
				continue
			}
			delete(r.mailboxes, chatID)
			r.mu.Unlock()
			r.log.Debug("session closed after idle timeout", zap.Int64("chat_id", chatID))
			return

		case upd := <-mailbox:
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(r.idleTimeout)
			r.process(ctx, upd)
		}
	}
}

// process converts one update into a session event, runs it through the
// handler and sends the resulting replies.
func (r *Router) process(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		// Acknowledge the button press before handling it.
		if _, err := r.bot.Request(tgbotapi.NewCallback(upd.CallbackQuery.ID, "")); err != nil {
			r.log.Warn("answer callback failed", zap.Error(err))
		}
	}

	ev, ok := eventFrom(upd)
	if !ok {
		return
	}

	for _, reply := range r.handler.Handle(ctx, ev) {
		msg := tgbotapi.NewMessage(ev.ChatID, reply.Text)
		if reply.Markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if reply.MainMenu {
			msg.ReplyMarkup = mainMenuKeyboard()
		}
		if _, err := r.bot.Send(msg); err != nil {
			r.log.Error("send failed", zap.Error(err), zap.Int64("chat_id", ev.ChatID))
		}
	}
}

func chatIDOf(upd tgbotapi.Update) (int64, bool) {
	switch {
	case upd.Message != nil:
		return upd.Message.Chat.ID, true
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		return upd.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

// eventFrom maps a Telegram update onto the transport-agnostic event shape.
func eventFrom(upd tgbotapi.Update) (session.Event, bool) {
	if upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil {
		if upd.CallbackQuery.Data == callbackDepartures {
			return session.Event{
				ChatID:    upd.CallbackQuery.Message.Chat.ID,
				Kind:      session.EventText,
				Text:      "/dep",
				Timestamp: time.Now(),
			}, true
		}
		// Unknown callback: ignore silently.
		return session.Event{}, false
	}

	msg := upd.Message
	if msg == nil {
		return session.Event{}, false
	}

	ev := session.Event{
		ChatID:    msg.Chat.ID,
		Timestamp: msg.Time(),
	}
	switch {
	case msg.Location != nil:
		ev.Kind = session.EventLocation
		ev.Location = domain.Location{
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		}
	case msg.Text != "":
		ev.Kind = session.EventText
		ev.Text = msg.Text
	default:
		ev.Kind = session.EventOther
		ev.ContentType = contentTypeOf(msg)
	}
	return ev, true
}

func contentTypeOf(msg *tgbotapi.Message) string {
	switch {
	case msg.Photo != nil:
		return "photo"
	case msg.Sticker != nil:
		return "sticker"
	case msg.Voice != nil:
		return "voice"
	case msg.Audio != nil:
		return "audio"
	case msg.Video != nil:
		return "video"
	case msg.Document != nil:
		return "document"
	case msg.Contact != nil:
		return "contact"
	}
	return "message"
}
