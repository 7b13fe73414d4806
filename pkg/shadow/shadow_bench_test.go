package shadow_test

import (
	"testing"

	"github.com/vango-dev/shadow/pkg/reactive"
	"github.com/vango-dev/shadow/pkg/shadow"
)

func benchBank(b *testing.B, rt *reactive.Runtime) *shadow.Object {
	b.Helper()
	v, err := shadow.New(bankSchema, deepBank(), shadow.WithRuntime(rt))
	if err != nil {
		b.Fatal(err)
	}
	return v.(*shadow.Object)
}

func BenchmarkNew(b *testing.B) {
	rt := reactive.NewRuntime()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchBank(b, rt)
	}
}

func BenchmarkObjectSet(b *testing.B) {
	rt := reactive.NewRuntime()
	item := benchBank(b, rt)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		item.Set("routingNumber", i)
	}
}

func BenchmarkArrayPush(b *testing.B) {
	rt := reactive.NewRuntime()
	employees := benchBank(b, rt).Get("employees").(*shadow.Array)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		employees.Push(map[string]any{"name": "x"})
		employees.Pop()
	}
}

func BenchmarkHasChanges(b *testing.B) {
	rt := reactive.NewRuntime()
	item := benchBank(b, rt)
	item.Get("safe").(*shadow.Object).Set("combination", "changed")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = item.Node().HasChanges()
	}
}
