package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/planner/pkg/log"
	"tableflip.dev/planner/pkg/todo"
)

// todoBucket holds to-dos next to the event month buckets, as todos/<id>.
const todoBucket = "todos"

// TodoPersistence defines the persistence contract for to-dos.
type TodoPersistence interface {
	Todos(ctx context.Context) []*todo.Todo
	GetTodo(ctx context.Context, id string) (*todo.Todo, error)
	StoreTodo(t *todo.Todo) error
	DeleteTodo(id string) error
}

// LoadTodos opens the to-do side of the store described by cfg.
func LoadTodos(cfg Config) (TodoPersistence, error) {
	return open(cfg)
}

func todoKey(id string) string {
	return todoBucket + keySeparator + id
}

func (p *persistence) Todos(ctx context.Context) []*todo.Todo {
	all := make([]*todo.Todo, 0)
	for key := range p.d.KeysPrefix(todoBucket+keySeparator, ctx.Done()) {
		t, err := p.readTodo(key)
		if err != nil {
			log.Error("store: read todo", err, "key", key)
			continue
		}
		all = append(all, t)
	}
	return all
}

func (p *persistence) GetTodo(_ context.Context, id string) (*todo.Todo, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	key := todoKey(id)
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.readTodo(key)
}

func (p *persistence) StoreTodo(t *todo.Todo) error {
	if err := checkID(t.ID); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.Created.IsZero() {
		t.Created = time.Now().UTC()
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.d.Write(todoKey(t.ID), data)
}

func (p *persistence) DeleteTodo(id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	key := todoKey(id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

func (p *persistence) readTodo(key string) (*todo.Todo, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &todo.Todo{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	t.ID = keyToPathTransform(key).FileName
	return t, nil
}
