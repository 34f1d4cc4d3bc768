package docx

import (
	"fmt"
	"strings"
)

// Image is an embedded picture reference located in the document markup.
type Image struct {
	Key string
	Ref string // relationship id of the image payload
}

// imageTags are the two block forms a picture can take: DrawingML and
// legacy VML. Formula previews do not reach this scan because the formula
// locator runs first and consumes their enclosing <w:object> blocks.
var imageTags = []string{"w:drawing", "w:pict"}

// LocateImages rewrites picture blocks into image placeholder tokens and
// returns the rewritten markup plus the located images in document order.
// Blocks without a resolvable relationship id are left untouched.
func LocateImages(markup string, rels map[string]string) (string, []*Image) {
	var out strings.Builder
	var images []*Image
	i := 0
	for {
		start, tag := nextImageBlock(markup, i)
		if start < 0 {
			out.WriteString(markup[i:])
			break
		}
		end, ok := findBalanced(markup, tag, start)
		if !ok {
			out.WriteString(markup[i:])
			break
		}
		block := markup[start:end]

		ref := imageRef(block)
		if ref == "" || rels[ref] == "" {
			out.WriteString(markup[i:end])
			i = end
			continue
		}

		img := &Image{Key: fmt.Sprintf("i%d", len(images)+1), Ref: ref}
		out.WriteString(markup[i:start])
		out.WriteString(ImageToken(img.Key))
		images = append(images, img)
		i = end
	}
	return out.String(), images
}

func nextImageBlock(markup string, from int) (int, string) {
	best, bestTag := -1, ""
	for _, tag := range imageTags {
		if i := indexTagOpen(markup, tag, from); i >= 0 && (best < 0 || i < best) {
			best, bestTag = i, tag
		}
	}
	return best, bestTag
}

func imageRef(block string) string {
	if m := blipEmbedRe.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	if m := imagedataIDRe.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	return ""
}
