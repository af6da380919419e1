// Copyright 2019-2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package auxlist

import "testing"

func TestRerrFindOrCreateReusesKey(t *testing.T) {
	rl := NewRerrBatchList(4, 32)
	b1, err := rl.FindOrCreate(2, 0)
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	b2, err := rl.FindOrCreate(2, 0)
	if err != nil {
		t.Fatalf("second FindOrCreate failed: %v", err)
	}
	if b1 != b2 {
		t.Fatalf("expected the same batch entry for a repeated key")
	}
	if rl.Len() != 1 {
		t.Fatalf("expected a single batch entry, got %d", rl.Len())
	}
}

func TestRerrAppendDedupAndBound(t *testing.T) {
	rl := NewRerrBatchList(2, 2)
	b, _ := rl.FindOrCreate(2, 0)
	if !rl.Append(b, 10, 1) {
		t.Fatalf("expected first append to succeed")
	}
	if !rl.Append(b, 10, 1) {
		t.Fatalf("expected duplicate append to be a no-op success")
	}
	if len(b.Dests) != 1 {
		t.Fatalf("expected dedup, got %d destinations", len(b.Dests))
	}
	if !rl.Append(b, 11, 2) {
		t.Fatalf("expected second distinct append to succeed")
	}
	if rl.Append(b, 12, 3) {
		t.Fatalf("expected append beyond MaxRerrDestinations to fail")
	}
}

func TestRerrFlushFreesAndInvokesCallback(t *testing.T) {
	rl := NewRerrBatchList(2, 32)
	b1, _ := rl.FindOrCreate(2, 0)
	rl.Append(b1, 100, 1)
	b2, _ := rl.FindOrCreate(3, 0)
	rl.Append(b2, 200, 1)

	seen := map[uint16]bool{}
	rl.Flush(func(b *RerrBatch) {
		seen[b.NextHop] = true
	})
	if !seen[2] || !seen[3] {
		t.Fatalf("expected both batches flushed, got %v", seen)
	}
	if rl.Len() != 0 {
		t.Fatalf("expected list empty after flush, got %d", rl.Len())
	}
	// slab must be reusable post-flush
	if _, err := rl.FindOrCreate(2, 0); err != nil {
		t.Fatalf("re-create after flush failed: %v", err)
	}
	if _, err := rl.FindOrCreate(3, 0); err != nil {
		t.Fatalf("re-create after flush failed: %v", err)
	}
}

func TestRerrPoolExhausted(t *testing.T) {
	rl := NewRerrBatchList(1, 32)
	if _, err := rl.FindOrCreate(2, 0); err != nil {
		t.Fatalf("first FindOrCreate failed: %v", err)
	}
	if _, err := rl.FindOrCreate(3, 0); err == nil {
		t.Fatalf("expected pool exhaustion for a distinct key")
	}
}
