// Package animals holds the fixed betting table of the animal lottery:
// 25 animals, each owning a block of 4 numbers, together covering 1..100.
package animals

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MinNumber        = 1
	MaxNumber        = 100
	NumbersPerAnimal = 4
)

var ErrInvariant = errors.New("animal registry invariant violation")

// Animal is one entry of the betting table. Reference data, never mutated.
type Animal struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Numbers    []int           `json:"numbers"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Icon       string          `json:"icon"`
}

var mult18 = decimal.NewFromInt(18)

var table = []Animal{
	{ID: 1, Name: "Avestruz", Numbers: []int{1, 2, 3, 4}, Multiplier: mult18, Icon: "https://images.unsplash.com/photo-1575550959106-5a7defe28b56?auto=format&fit=crop&q=80&w=200"},
	{ID: 2, Name: "Águia", Numbers: []int{5, 6, 7, 8}, Multiplier: mult18, Icon: "🦅"},
	{ID: 3, Name: "Burro", Numbers: []int{9, 10, 11, 12}, Multiplier: mult18, Icon: "https://images.unsplash.com/photo-1534445331316-01582e0e56e4?auto=format&fit=crop&q=80&w=200"},
	{ID: 4, Name: "Borboleta", Numbers: []int{13, 14, 15, 16}, Multiplier: mult18, Icon: "🦋"},
	{ID: 5, Name: "Cachorro", Numbers: []int{17, 18, 19, 20}, Multiplier: mult18, Icon: "🐕"},
	{ID: 6, Name: "Cabra", Numbers: []int{21, 22, 23, 24}, Multiplier: mult18, Icon: "🐐"},
	{ID: 7, Name: "Carneiro", Numbers: []int{25, 26, 27, 28}, Multiplier: mult18, Icon: "🐑"},
	{ID: 8, Name: "Camelo", Numbers: []int{29, 30, 31, 32}, Multiplier: mult18, Icon: "🐪"},
	{ID: 9, Name: "Cobra", Numbers: []int{33, 34, 35, 36}, Multiplier: mult18, Icon: "🐍"},
	{ID: 10, Name: "Coelho", Numbers: []int{37, 38, 39, 40}, Multiplier: mult18, Icon: "🐇"},
	{ID: 11, Name: "Cavalo", Numbers: []int{41, 42, 43, 44}, Multiplier: mult18, Icon: "🐎"},
	{ID: 12, Name: "Elefante", Numbers: []int{45, 46, 47, 48}, Multiplier: mult18, Icon: "🐘"},
	{ID: 13, Name: "Galo", Numbers: []int{49, 50, 51, 52}, Multiplier: mult18, Icon: "🐓"},
	{ID: 14, Name: "Gato", Numbers: []int{53, 54, 55, 56}, Multiplier: mult18, Icon: "🐈"},
	{ID: 15, Name: "Jacaré", Numbers: []int{57, 58, 59, 60}, Multiplier: mult18, Icon: "🐊"},
	{ID: 16, Name: "Leão", Numbers: []int{61, 62, 63, 64}, Multiplier: mult18, Icon: "🦁"},
	{ID: 17, Name: "Macaco", Numbers: []int{65, 66, 67, 68}, Multiplier: mult18, Icon: "🐒"},
	{ID: 18, Name: "Porco", Numbers: []int{69, 70, 71, 72}, Multiplier: mult18, Icon: "🐷"},
	{ID: 19, Name: "Pavão", Numbers: []int{73, 74, 75, 76}, Multiplier: mult18, Icon: "🦚"},
	{ID: 20, Name: "Peru", Numbers: []int{77, 78, 79, 80}, Multiplier: mult18, Icon: "🦃"},
	{ID: 21, Name: "Touro", Numbers: []int{81, 82, 83, 84}, Multiplier: mult18, Icon: "🐂"},
	{ID: 22, Name: "Tigre", Numbers: []int{85, 86, 87, 88}, Multiplier: mult18, Icon: "🐅"},
	{ID: 23, Name: "Urso", Numbers: []int{89, 90, 91, 92}, Multiplier: mult18, Icon: "🐻"},
	{ID: 24, Name: "Veado", Numbers: []int{93, 94, 95, 96}, Multiplier: mult18, Icon: "🦌"},
	{ID: 25, Name: "Vaca", Numbers: []int{97, 98, 99, 100}, Multiplier: mult18, Icon: "🐄"},
}

// Registry indexes the betting table for id and number lookups.
type Registry struct {
	animals  []Animal
	byID     map[int]Animal
	byNumber map[int]Animal
}

// New builds a registry over the given table.
func New(animals []Animal) *Registry {
	r := &Registry{
		animals:  animals,
		byID:     make(map[int]Animal, len(animals)),
		byNumber: make(map[int]Animal, MaxNumber),
	}
	for _, a := range animals {
		r.byID[a.ID] = a
		for _, n := range a.Numbers {
			r.byNumber[n] = a
		}
	}
	return r
}

// Default returns the built-in 25-animal table.
func Default() *Registry {
	return New(table)
}

// Validate checks that the number blocks partition 1..100 exactly once
// and that every multiplier is positive. Callers should run this at
// startup and treat any error as fatal: a broken table makes draw
// resolution impossible.
func (r *Registry) Validate() error {
	owner := make(map[int]int, MaxNumber)
	for _, a := range r.animals {
		if !a.Multiplier.IsPositive() {
			return fmt.Errorf("%w: animal %d (%s) has non-positive multiplier %s", ErrInvariant, a.ID, a.Name, a.Multiplier)
		}
		if len(a.Numbers) != NumbersPerAnimal {
			return fmt.Errorf("%w: animal %d (%s) owns %d numbers, want %d", ErrInvariant, a.ID, a.Name, len(a.Numbers), NumbersPerAnimal)
		}
		for _, n := range a.Numbers {
			if n < MinNumber || n > MaxNumber {
				return fmt.Errorf("%w: animal %d (%s) owns out-of-range number %d", ErrInvariant, a.ID, a.Name, n)
			}
			if prev, taken := owner[n]; taken {
				return fmt.Errorf("%w: number %d owned by both animal %d and animal %d", ErrInvariant, n, prev, a.ID)
			}
			owner[n] = a.ID
		}
	}
	for n := MinNumber; n <= MaxNumber; n++ {
		if _, ok := owner[n]; !ok {
			return fmt.Errorf("%w: number %d owned by no animal", ErrInvariant, n)
		}
	}
	return nil
}

// Find returns the animal with the given id.
func (r *Registry) Find(id int) (Animal, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// ByNumber returns the animal owning the given number. On a validated
// registry this resolves for every number in 1..100.
func (r *Registry) ByNumber(n int) (Animal, bool) {
	a, ok := r.byNumber[n]
	return a, ok
}

// List returns the table in id order.
func (r *Registry) List() []Animal {
	out := make([]Animal, len(r.animals))
	copy(out, r.animals)
	return out
}
