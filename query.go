package tescrow

import "fmt"

// Query modifiers, appended to a query path after "?". A plain query reads
// one key and a prefix query lists every key starting with the data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is one key value pair of a query result.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries of one path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of an extension to a router.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths, such as "/escrows", to their handlers.
type QueryRouter struct {
	handlers map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{handlers: make(map[string]QueryHandler)}
}

// RegisterAll calls every register with this router.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds h to path. Binding a path twice panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.handlers[path]; taken {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.handlers[path] = h
}

// Handler returns the handler of path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.handlers[path]
}
