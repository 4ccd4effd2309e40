package xmltree

// Item is an <item type=".." lang="..">value</item> leaf.
type Item struct {
	Type  string
	Lang  string
	Value string
	// Present is false for items without character data, which FLEx writes
	// for empty annotation slots.
	Present bool
}

// Key returns "<type>_<lang>", the column name used for passthrough items.
func (i Item) Key() string {
	return i.Type + "_" + i.Lang
}

// Items returns the direct <item> children of n.
func (n *Node) Items() []Item {
	var out []Item
	for _, c := range n.All("item") {
		v := c.InnerText()
		out = append(out, Item{
			Type:    c.Attr("type"),
			Lang:    c.Attr("lang"),
			Value:   v,
			Present: v != "",
		})
	}
	return out
}

// Item returns the value of the first item of the given type and language.
func (n *Node) Item(typ, lang string) (string, bool) {
	for _, it := range n.Items() {
		if it.Type == typ && it.Lang == lang && it.Present {
			return it.Value, true
		}
	}
	return "", false
}

// ItemAny returns the first present item of the given type, preferring the
// listed languages in order and falling back to any language.
func (n *Node) ItemAny(typ string, prefer ...string) (Item, bool) {
	items := n.Items()
	for _, lang := range prefer {
		for _, it := range items {
			if it.Type == typ && it.Lang == lang && it.Present {
				return it, true
			}
		}
	}
	for _, it := range items {
		if it.Type == typ && it.Present {
			return it, true
		}
	}
	return Item{}, false
}
