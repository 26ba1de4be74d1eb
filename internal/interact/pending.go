package interact

import "sync"

// Pending is a Prompter fed ahead of time. Front-ends that collect a label
// asynchronously, such as a window text field, Offer the label before the
// press that places it. Each label is used at most once.
type Pending struct {
	mu    sync.Mutex
	text  string
	valid bool
}

// Offer stores the label for the next text press, replacing any unused one.
func (p *Pending) Offer(text string) {
	p.mu.Lock()
	p.text, p.valid = text, true
	p.mu.Unlock()
}

// Withdraw discards an unused label.
func (p *Pending) Withdraw() {
	p.mu.Lock()
	p.text, p.valid = "", false
	p.mu.Unlock()
}

// Peek returns the unused label without consuming it.
func (p *Pending) Peek() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text, p.valid
}

// Prompt consumes the offered label.
func (p *Pending) Prompt() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	text, ok := p.text, p.valid
	p.text, p.valid = "", false
	return text, ok
}
