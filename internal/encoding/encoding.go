// Package encoding renders builds for the community build tools
package encoding

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/rules"
)

const (
	// WynnDataBase is the WynnData builder page
	WynnDataBase = "https://www.wynndata.tk/builder/"

	// WynnBuilderBase is the WynnBuilder page with the v4 hash prefix
	WynnBuilderBase = "https://wynnbuilder.github.io/#4_"

	// emptySlotID is added to the slot index to mark an empty slot
	emptySlotID = 10000

	itemDigits  = 3
	skillDigits = 2
	levelDigits = 2
)

// digits is WynnBuilder's base-64 alphabet
const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz+-"

// FromIntN encodes the low 6*n bits of v as n base-64 digits, most
// significant first. Higher bits are dropped.
func FromIntN(v, n int) string {
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = digits[v&0x3f]
		v >>= 6
	}
	return string(out)
}

// escape percent-encodes a query component, spaces included
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// WynnDataURL returns a WynnData builder link. Every slot is listed; empty
// slots have an empty value.
func WynnDataURL(b equipment.Build) string {
	params := make([]string, 0, equipment.NumSlots)
	for _, slot := range equipment.AllSlots() {
		name := ""
		if item := b.Get(slot); item != nil {
			name = item.Name()
		}
		params = append(params, escape(slot.String())+"="+escape(name))
	}
	return WynnDataBase + "?" + strings.Join(params, "&")
}

// WynnBuilderURL returns a WynnBuilder v4 link. ids maps item names to
// WynnBuilder's numeric IDs; an occupied slot whose item is missing from
// ids is a NotFound error.
func WynnBuilderURL(b equipment.Build, level int, ids map[string]int) (string, error) {
	var sb strings.Builder
	sb.WriteString(WynnBuilderBase)

	for _, slot := range equipment.AllSlots() {
		id := emptySlotID + int(slot)
		if item := b.Get(slot); item != nil {
			known, ok := ids[item.ID]
			if !ok {
				return "", errors.NotFoundf("no WynnBuilder id for item %q", item.ID).
					WithMeta("item", item.ID).
					WithMeta("slot", slot.String())
			}
			id = known
		}
		sb.WriteString(FromIntN(id, itemDigits))
	}

	for _, req := range rules.Requirements(b) {
		sb.WriteString(FromIntN(req, skillDigits))
	}
	sb.WriteString(FromIntN(level, levelDigits))

	return sb.String(), nil
}

// Listing renders b as text: one "slot: name" line per occupied slot, then
// the WynnData link and, when ids is non-empty, the WynnBuilder link.
func Listing(b equipment.Build, level int, ids map[string]int) (string, error) {
	var sb strings.Builder
	for _, slot := range b.Occupied() {
		fmt.Fprintf(&sb, "%s: %s\n", slot, b.Get(slot).Name())
	}
	fmt.Fprintf(&sb, "WynnData: %s\n", WynnDataURL(b))

	if len(ids) > 0 {
		link, err := WynnBuilderURL(b, level, ids)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "WynnBuilder: %s\n", link)
	}
	return sb.String(), nil
}
