package purchases

import (
	"strconv"
	"strings"
)

// cartContents is the parsed form of the delimited cart string. distinct keeps
// first-appearance order; counts maps each product id to how many times it was
// requested.
type cartContents struct {
	distinct []int64
	counts   map[int64]int
	tokens   int
}

// parseCart splits the comma-delimited cart into product ids. A repeated id
// means one more unit of that product. Non-numeric or non-positive tokens are
// rejected rather than coerced.
func parseCart(spec string) (*cartContents, error) {
	contents := &cartContents{counts: map[int64]int{}}

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, errMalformedCart
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil || id <= 0 {
			return nil, errMalformedCart
		}
		if contents.counts[id] == 0 {
			contents.distinct = append(contents.distinct, id)
		}
		contents.counts[id]++
		contents.tokens++
	}

	if contents.tokens == 0 {
		return nil, errMalformedCart
	}
	return contents, nil
}
