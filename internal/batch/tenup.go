package batch

import "fmt"

// BlockSize is how many cards share one 10-up print sheet.
const BlockSize = 10

// Block is one 10-up output row: up to ten cards in sorted order, with
// the card fields suffixed by position when rendered.
type Block struct {
	Number string // zero-padded block index
	Cards  []Card
}

// TenUp packs cards into fixed-size blocks in their existing order.
// Block numbering is the global card index divided by BlockSize; a short
// final block simply carries fewer cards.
func TenUp(cards []Card) []Block {
	var blocks []Block

	for i, card := range cards {
		if i%BlockSize == 0 {
			blocks = append(blocks, Block{Number: fmt.Sprintf("%04d", i/BlockSize)})
		}

		last := &blocks[len(blocks)-1]
		last.Cards = append(last.Cards, card)
	}

	return blocks
}
