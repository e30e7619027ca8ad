package game

import (
	"fmt"

	"github.com/cbodonnell/worldlens/pkg/config"
	"github.com/cbodonnell/worldlens/pkg/memory"
)

// RawRecord is the address of one undecoded entity record.
type RawRecord struct {
	Address uint64
}

// EntityListWalker traverses the intrusive doubly-linked list of loaded entities.
// Traversal is driven by the list's live count, never by a terminator, so a
// garbage tail pointer is never followed.
type EntityListWalker struct {
	reader  *memory.Reader
	offsets *config.Offsets
}

func NewEntityListWalker(reader *memory.Reader, offsets *config.Offsets) *EntityListWalker {
	return &EntityListWalker{
		reader:  reader,
		offsets: offsets,
	}
}

// Walk returns the records of the list at address in traversal order.
func (w *EntityListWalker) Walk(list uint64) ([]RawRecord, error) {
	size, err := w.reader.ReadUint32(list + w.offsets.ListSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity list size: %w", err)
	}
	if size == 0 {
		return []RawRecord{}, nil
	}
	if size > w.offsets.MaxEntities {
		return nil, fmt.Errorf("%w: entity list size %d exceeds %d", memory.ErrCorruptData, size, w.offsets.MaxEntities)
	}

	node, err := w.reader.ResolvePointerChain(list, w.offsets.ListHeadChain...)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity list head: %w", err)
	}

	records := make([]RawRecord, 0, size)
	for remaining := size; remaining > 0; remaining-- {
		data, err := w.reader.ReadPointer(node + w.offsets.NodeData)
		if err != nil {
			return nil, fmt.Errorf("failed to read entity node %d: %w", len(records), err)
		}
		records = append(records, RawRecord{Address: data})

		if remaining == 1 {
			break
		}
		node, err = w.reader.ReadPointer(node + w.offsets.NodeNext)
		if err != nil {
			return nil, fmt.Errorf("failed to advance entity node %d: %w", len(records), err)
		}
	}
	return records, nil
}
