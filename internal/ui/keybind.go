package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// A key sequence is a space separated list of keys in tea.KeyMsg.String()
// form, with the space bar written as "SPC": "q", "ctrl+r", "SPC s v".

type binding struct {
	cmd  tea.Cmd
	desc string
}

// KeybindRegistry maps key sequences to commands.
type KeybindRegistry struct {
	bindings map[string]binding
	labels   map[string]string
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings: make(map[string]binding),
		labels:   make(map[string]string),
	}
}

// Bind registers seq without a description.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers seq, replacing any earlier binding.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.bindings[normalizeSeq(seq)] = binding{cmd: cmd, desc: desc}
}

// Label names the submenu opened by prefix, e.g. Label("SPC s", "Split").
func (r *KeybindRegistry) Label(prefix, name string) {
	r.labels[normalizeSeq(prefix)] = name
}

// Unbind removes seq.
func (r *KeybindRegistry) Unbind(seq string) {
	delete(r.bindings, normalizeSeq(seq))
}

// Lookup returns the command bound to seq, or nil.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)].cmd
}

// HasPrefix reports whether some longer sequence starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k, b := range r.bindings {
		if b.cmd != nil && strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Hints returns every bound sequence with its description, or the sequence
// itself when it has none.
func (r *KeybindRegistry) Hints() map[string]string {
	out := make(map[string]string, len(r.bindings))
	for seq, b := range r.bindings {
		if b.cmd == nil {
			continue
		}
		out[seq] = orDefault(b.desc, seq)
	}
	return out
}

// LeaderHints returns the keys that may follow currentSeq ("SPC" when
// empty), each with a description. A key that opens a submenu is shown with
// the submenu's label, or "key…" when it has none.
func (r *KeybindRegistry) LeaderHints(currentSeq string) map[string]string {
	base := "SPC"
	if currentSeq != "" {
		base = normalizeSeq(currentSeq)
	}
	out := make(map[string]string)
	for seq, b := range r.bindings {
		rest, ok := strings.CutPrefix(seq, base+" ")
		if b.cmd == nil || !ok {
			continue
		}
		next, _, _ := strings.Cut(rest, " ")
		sub := base + " " + next
		if r.HasPrefix(sub) {
			out[next] = orDefault(r.labels[sub], next+"…")
			continue
		}
		out[next] = orDefault(b.desc, seq)
	}
	return out
}

// helpBindings converts LeaderHints into key.Bindings sorted by key, with a
// trailing esc entry, for bubbles/help.
func (r *KeybindRegistry) helpBindings(currentSeq string) []key.Binding {
	hints := r.LeaderHints(currentSeq)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(out, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler turns key presses into registry lookups. SPC starts a leader
// sequence that stays open while a longer binding could still match.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderWaiting bool
	Buffer        []string // keys of the open sequence, starting with "SPC"
}

// NewKeyHandler creates a handler over reg.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Pending returns the open leader sequence, e.g. "SPC s", or "".
func (h *KeyHandler) Pending() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// Handle processes msg. consumed reports whether the key belonged to the
// keybind system; cmd is the bound command, if one matched.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	part := keyToSeqPart(msg.String())

	if h.LeaderWaiting {
		if part == "esc" {
			h.reset()
			return true, nil
		}
		h.Buffer = append(h.Buffer, part)
		seq := h.Pending()
		if c := h.Registry.Lookup(seq); c != nil {
			h.reset()
			return true, c
		}
		if !h.Registry.HasPrefix(seq) {
			h.reset()
		}
		return true, nil
	}

	if part == "SPC" {
		h.LeaderWaiting = true
		h.Buffer = []string{part}
		return true, nil
	}
	if part == "esc" {
		return false, nil
	}
	if c := h.Registry.Lookup(part); c != nil {
		return true, c
	}
	return false, nil
}
