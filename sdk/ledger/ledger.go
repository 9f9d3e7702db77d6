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

// Package ledger 持有一個 session 共用的點數餘額。
//
// 所有牌桌共用同一個 Ledger，牌桌本身不持有餘額；
// 呼叫端在牌桌算完整局結果後，才把淨輸贏套用到 Ledger。
package ledger

import "sync"

// DefaultCredits 新 session 的初始點數。
const DefaultCredits = 1000

// Ledger 點數帳本的最小合約。
type Ledger interface {
	Get() int
	Add(amount int)
	Remove(amount int)
}

// Subscriber 在每次異動後收到最新餘額（同步呼叫，回傳後 Add/Remove 才返回）。
// 訂閱者可以呼叫 Get，但不可以在回呼裡再 Add / Remove。
type Subscriber func(balance int)

// Credits 以互斥鎖保護的 Ledger 實作，餘額永不為負。
//
// bmu 涵蓋「寫入 + 廣播」，併發異動時訂閱者收到的餘額順序與寫入順序一致；
// mu 只保護 balance / subs，讓訂閱者在廣播中仍可 Get。
type Credits struct {
	bmu     sync.Mutex
	mu      sync.Mutex
	balance int
	subs    []Subscriber
}

// New 建立帳本，initial 小於 0 時視為 0。
func New(initial int, subs ...Subscriber) *Credits {
	return &Credits{balance: max(0, initial), subs: subs}
}

// Subscribe 增加一個顯示端。
func (c *Credits) Subscribe(s Subscriber) {
	if s == nil {
		return
	}
	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()
}

func (c *Credits) Get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance
}

// Add 負數視為 0。
func (c *Credits) Add(amount int) {
	c.mutate(max(0, amount))
}

// Remove 扣除後若為負則歸零；負數視為 0。
func (c *Credits) Remove(amount int) {
	c.mutate(-max(0, amount))
}

// Apply 套用一局的淨輸贏：正數走 Add，負數走 Remove。
func Apply(l Ledger, delta int) {
	if delta >= 0 {
		l.Add(delta)
		return
	}
	l.Remove(-delta)
}

func (c *Credits) mutate(delta int) {
	c.bmu.Lock()
	defer c.bmu.Unlock()

	c.mu.Lock()
	c.balance = max(0, c.balance+delta)
	bal := c.balance
	subs := c.subs
	c.mu.Unlock()

	// 放開 mu 後廣播，訂閱者可以回頭呼叫 Get
	for _, s := range subs {
		s(bal)
	}
}
