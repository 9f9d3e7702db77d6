// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package display

import "sync"

// Note 一則已顯示的訊息。
type Note struct {
	Msg      string   `json:"msg"`
	Category Category `json:"category"`
}

// Memo 保留最後的餘額與最近 N 則訊息，供 API 快照與測試讀回。
type Memo struct {
	mu      sync.Mutex
	cap     int
	balance int
	notes   []Note
	sounds  []string
}

// NewMemo size <= 0 時保留 20 則。
func NewMemo(size int) *Memo {
	if size <= 0 {
		size = 20
	}
	return &Memo{cap: size}
}

func (m *Memo) Balance(credits int) {
	m.mu.Lock()
	m.balance = credits
	m.mu.Unlock()
}

func (m *Memo) Message(msg string, cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, Note{Msg: msg, Category: cat})
	if over := len(m.notes) - m.cap; over > 0 {
		m.notes = append(m.notes[:0], m.notes[over:]...)
	}
}

func (m *Memo) Trigger(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sounds = append(m.sounds, event)
	if over := len(m.sounds) - m.cap; over > 0 {
		m.sounds = append(m.sounds[:0], m.sounds[over:]...)
	}
}

func (m *Memo) Credits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// Notes 回傳訊息副本，舊的在前。
func (m *Memo) Notes() []Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Note(nil), m.notes...)
}

// Last 回傳最後一則訊息，沒有則回傳零值。
func (m *Memo) Last() Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.notes) == 0 {
		return Note{}
	}
	return m.notes[len(m.notes)-1]
}

func (m *Memo) Sounds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sounds...)
}
