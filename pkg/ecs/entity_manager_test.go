package ecs

import (
	"reflect"
	"testing"
)

// 测试用组件：模拟页面元素的布局、显现和标签
type testBounds struct {
	X, Y, W, H float64
}

type testReveal struct {
	Visible bool
}

type testLabel struct {
	Text string
}

var (
	boundsType = reflect.TypeOf(&testBounds{})
	revealType = reflect.TypeOf(&testReveal{})
	labelType  = reflect.TypeOf(&testLabel{})
)

// newTestPage 创建 分区(bounds+reveal)、卡片(bounds+reveal)、按钮(bounds+label)
func newTestPage(t *testing.T) (em *EntityManager, section, card, button EntityID) {
	t.Helper()
	em = NewEntityManager()
	section = em.CreateEntity()
	em.AddComponent(section, &testBounds{W: 1280, H: 720})
	em.AddComponent(section, &testReveal{})

	card = em.CreateEntity()
	em.AddComponent(card, &testBounds{X: 120, Y: 140, W: 480, H: 360})
	em.AddComponent(card, &testReveal{})

	button = em.CreateEntity()
	em.AddComponent(button, &testBounds{X: 120, Y: 460, W: 160, H: 48})
	em.AddComponent(button, &testLabel{Text: "View Work"})
	return em, section, card, button
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	first := em.CreateEntity()
	second := em.CreateEntity()

	// ID 从 1 开始递增，0 保留
	if first != 1 || second != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first, second)
	}
	if !em.Exists(first) || em.Exists(0) {
		t.Error("Exists should report created entities only")
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount() = %d, want 2", em.EntityCount())
	}
}

func TestComponentAccess(t *testing.T) {
	em, _, card, button := newTestPage(t)

	comp, ok := em.GetComponent(card, boundsType)
	if !ok {
		t.Fatal("card bounds should be found")
	}
	if b := comp.(*testBounds); b.W != 480 || b.H != 360 {
		t.Errorf("card bounds = %+v", b)
	}

	if em.HasComponent(card, labelType) {
		t.Error("card should not have a label")
	}
	if !em.HasComponent(button, labelType) {
		t.Error("button should have a label")
	}

	// 同类型组件替换而不是追加
	em.AddComponent(button, &testLabel{Text: "Contact"})
	label, _ := GetComponent[*testLabel](em, button)
	if label.Text != "Contact" {
		t.Errorf("label = %q, want replaced value", label.Text)
	}

	em.RemoveComponent(button, labelType)
	if em.HasComponent(button, labelType) {
		t.Error("label should be removed")
	}
	if !em.HasComponent(button, boundsType) {
		t.Error("removing one component must keep the others")
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(99, &testBounds{})
	if em.HasComponent(99, boundsType) {
		t.Error("components on unknown entities should be ignored")
	}
	if got := em.GetEntitiesWith(boundsType); len(got) != 0 {
		t.Errorf("GetEntitiesWith() = %v, want empty", got)
	}
}

// 测试组合查询
func TestGetEntitiesWith(t *testing.T) {
	em, section, card, button := newTestPage(t)

	tests := []struct {
		name  string
		types []reflect.Type
		want  []EntityID
	}{
		{"只要布局", []reflect.Type{boundsType}, []EntityID{section, card, button}},
		{"布局加显现", []reflect.Type{boundsType, revealType}, []EntityID{section, card}},
		{"显现加布局顺序无关", []reflect.Type{revealType, boundsType}, []EntityID{section, card}},
		{"标签", []reflect.Type{labelType}, []EntityID{button}},
		{"无人拥有的组合", []reflect.Type{revealType, labelType}, []EntityID{}},
		{"不传类型返回全部", nil, []EntityID{section, card, button}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := em.GetEntitiesWith(tt.types...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetEntitiesWith() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDestroyEntity(t *testing.T) {
	em, section, card, button := newTestPage(t)
	em.DestroyEntity(section)
	em.DestroyEntity(button)

	// 清理前仍然存在
	if !em.Exists(section) || !em.HasComponent(section, boundsType) {
		t.Error("marked entity should survive until RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.Exists(section) || em.Exists(button) {
		t.Error("marked entities should be removed")
	}
	if got := em.GetEntitiesWith(boundsType); len(got) != 1 || got[0] != card {
		t.Errorf("remaining = %v, want [%d]", got, card)
	}
	if em.EntityCount() != 1 {
		t.Errorf("EntityCount() = %d, want 1", em.EntityCount())
	}
}

// TestGetEntitiesWithSorted 查询结果按 ID 升序，即创建顺序
func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testBounds{X: float64(i)})
	}

	ids := em.GetEntitiesWith(boundsType)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not sorted at %d: %v >= %v", i, ids[i-1], ids[i])
		}
	}
}

func TestGenericAccessors(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testBounds{X: 1, Y: 2})

	b, ok := GetComponent[*testBounds](em, id)
	if !ok || b.X != 1 || b.Y != 2 {
		t.Fatalf("GetComponent = %+v, %v", b, ok)
	}

	// 泛型与反射版本共享同一类型键
	if !em.HasComponent(id, boundsType) {
		t.Error("generic AddComponent should be visible to reflect HasComponent")
	}
	if _, ok := GetComponent[*testReveal](em, id); ok {
		t.Error("reveal component should not exist")
	}

	em.AddComponent(id, &testReveal{})
	if got := GetEntitiesWith2[*testBounds, *testReveal](em); len(got) != 1 || got[0] != id {
		t.Errorf("GetEntitiesWith2 = %v, want [%d]", got, id)
	}
	if got := GetEntitiesWith3[*testBounds, *testReveal, *testLabel](em); len(got) != 0 {
		t.Errorf("GetEntitiesWith3 = %v, want empty", got)
	}

	RemoveComponent[*testReveal](em, id)
	if HasComponent[*testReveal](em, id) {
		t.Error("reveal component should be removed")
	}
}

func TestClear(t *testing.T) {
	em, section, _, _ := newTestPage(t)
	em.Clear()
	if em.EntityCount() != 0 || em.Exists(section) {
		t.Error("Clear should remove all entities")
	}
	if got := em.GetEntitiesWith(boundsType); len(got) != 0 {
		t.Errorf("components should be cleared, got %v", got)
	}
	if next := em.CreateEntity(); next == section {
		t.Error("IDs should not be reused after Clear")
	}
}
