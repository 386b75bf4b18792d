// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

package main

import (
	"github.com/edwinsyarief/bento"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	count := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		w := bento.NewWorld(numEntities)
		builder := bento.NewBuilder2[comp1, comp2](w)
		builder.NewEntities(numEntities)
		view := bento.NewView2[comp1, comp2](w)

		for it := 0; it < iters; it++ {
			view.Reset()
			for view.Next() {
				c1s, c2s := view.Slices()
				for i := range c1s {
					c1s[i].V += c2s[i].V
					c1s[i].W += c2s[i].W
				}
			}
		}
	}
}
