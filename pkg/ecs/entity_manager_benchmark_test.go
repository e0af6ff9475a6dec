package ecs

import "testing"

// setupBenchmarkPage 创建 count 个带布局和显现的卡片，其中每 8 个带一个标签
func setupBenchmarkPage(count int) *EntityManager {
	em := NewEntityManager()
	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testBounds{X: float64(i), W: 320, H: 200})
		AddComponent(em, id, &testReveal{})
		if i%8 == 0 {
			AddComponent(em, id, &testLabel{Text: "card"})
		}
	}
	return em
}

// BenchmarkQueryDense 两列长度相同
func BenchmarkQueryDense(b *testing.B) {
	em := setupBenchmarkPage(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testBounds, *testReveal](em)
	}
}

// BenchmarkQuerySparse 标签列只有 1/8，查询从它开始
func BenchmarkQuerySparse(b *testing.B) {
	em := setupBenchmarkPage(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testBounds, *testLabel](em)
	}
}

func BenchmarkGetComponent(b *testing.B) {
	em := setupBenchmarkPage(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GetComponent[*testBounds](em, EntityID(1+i%64))
	}
}
