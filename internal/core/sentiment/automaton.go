package sentiment

// Aho-Corasick automaton over folded UTF-8 bytes. Each node carries a
// dense 256-way transition table so scanning never touches a map

type node struct {
	next [256]int32 // -1 when absent
	fail int32
	out  []int // term ids ending here
}

type automaton struct {
	nodes []node
	lens  []int // byte length per term id
}

func newNode() node {
	var n node
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

// compile builds the automaton for terms; term i gets id i
func compile(terms []string) *automaton {
	a := &automaton{nodes: []node{newNode()}, lens: make([]int, len(terms))}
	for id, t := range terms {
		a.lens[id] = len(t)
		if t == "" {
			continue
		}
		s := int32(0)
		for i := 0; i < len(t); i++ {
			b := t[i]
			nxt := a.nodes[s].next[b]
			if nxt == -1 {
				nxt = int32(len(a.nodes))
				a.nodes[s].next[b] = nxt
				a.nodes = append(a.nodes, newNode())
			}
			s = nxt
		}
		a.nodes[s].out = append(a.nodes[s].out, id)
	}
	a.link()
	return a
}

// link sets failure links breadth first and merges outputs along them
func (a *automaton) link() {
	q := make([]int32, 0, len(a.nodes))
	for b := range 256 {
		if s := a.nodes[0].next[b]; s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}
	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := range 256 {
			s := a.nodes[r].next[b]
			if s == -1 {
				continue
			}
			q = append(q, s)
			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].next[b] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].next[b]; nxt != -1 && nxt != s {
				a.nodes[s].fail = nxt
			}
			a.nodes[s].out = append(a.nodes[s].out, a.nodes[a.nodes[s].fail].out...)
		}
	}
}

// scan calls fn(start, end, id) for every occurrence of every term in text
func (a *automaton) scan(text string, fn func(start, end, id int)) {
	s := int32(0)
	for i := 0; i < len(text); i++ {
		b := text[i]
		for s != 0 && a.nodes[s].next[b] == -1 {
			s = a.nodes[s].fail
		}
		if nxt := a.nodes[s].next[b]; nxt != -1 {
			s = nxt
		}
		for _, id := range a.nodes[s].out {
			end := i + 1
			fn(end-a.lens[id], end, id)
		}
	}
}
