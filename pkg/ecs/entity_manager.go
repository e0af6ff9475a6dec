// Package ecs 页面元素使用的最小实体-组件存储
package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 按组件类型分列存储组件
//
// 每种组件类型一列（EntityID -> 组件），查询时从最短的列开始过滤。
// 页面实体（分区、卡片、按钮）数量很少且挂载后基本不变，查询结果
// 按 ID 升序返回，系统的遍历顺序即创建顺序，绘制顺序稳定。
type EntityManager struct {
	nextID  EntityID
	alive   map[EntityID]struct{}
	columns map[reflect.Type]map[EntityID]any

	// 标记删除、等待 RemoveMarkedEntities 清理的实体
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建空的实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:  1,
		alive:   make(map[EntityID]struct{}),
		columns: make(map[reflect.Type]map[EntityID]any),
	}
}

// CreateEntity 创建新实体并返回 ID，ID 不会复用
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.alive[id] = struct{}{}
	return id
}

// DestroyEntity 标记实体待删除，在 RemoveMarkedEntities 时真正移除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体及其组件
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.alive, id)
		for _, col := range em.columns {
			delete(col, id)
		}
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// Exists 报告实体是否存在（已标记删除但尚未清理的实体仍然存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.alive[id]
	return ok
}

// EntityCount 当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.alive)
}

// AddComponent 为实体添加组件，同类型组件会被替换；实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	em.setComponent(id, reflect.TypeOf(component), component)
}

func (em *EntityManager) setComponent(id EntityID, t reflect.Type, component any) {
	if !em.Exists(id) {
		return
	}
	col, ok := em.columns[t]
	if !ok {
		col = make(map[EntityID]any)
		em.columns[t] = col
	}
	col[id] = component
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if col, ok := em.columns[componentType]; ok {
		delete(col, id)
	}
}

// GetComponent 获取实体的指定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.columns[componentType][id]
	return comp, ok
}

// HasComponent 检查实体是否拥有指定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.columns[componentType][id]
	return ok
}

// Clear 立即删除全部实体，ID 计数不重置
func (em *EntityManager) Clear() {
	em.alive = make(map[EntityID]struct{})
	em.columns = make(map[reflect.Type]map[EntityID]any)
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// GetEntitiesWith 查询同时拥有全部指定组件的实体，按 ID 升序
// 不传类型时返回全部实体
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	if len(componentTypes) == 0 {
		for id := range em.alive {
			result = append(result, id)
		}
		slices.Sort(result)
		return result
	}

	// 从最短的列开始，其余列只做成员检查
	var base map[EntityID]any
	for _, t := range componentTypes {
		col := em.columns[t]
		if len(col) == 0 {
			return result
		}
		if base == nil || len(col) < len(base) {
			base = col
		}
	}

	for id := range base {
		hasAll := true
		for _, t := range componentTypes {
			if _, ok := em.columns[t][id]; !ok {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}
