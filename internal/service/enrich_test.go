package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cineexplorer/internal/model"
)

func TestEnrichOverridesEmbeddedCharacters(t *testing.T) {
	builder, repos := newBuilder(t, 500, 1)

	doc, err := builder.BuildDocument("m1")
	require.NoError(t, err)
	require.Equal(t, []string{"Hero", "Villain"}, doc.Cast[0].Characters)

	// 角色关系表随后被另一批抽取更新，内嵌快照就此脱节
	require.NoError(t, repos.DB.Where("mid = ? AND pid = ?", "m1", "p1").Delete(&model.Character{}).Error)
	require.NoError(t, repos.DB.Create(&model.Character{Mid: "m1", Pid: "p1", Name: "Hero Prime"}).Error)

	enrich := NewEnrichService(repos.Credit)
	enriched, err := enrich.Enrich(doc)
	require.NoError(t, err)

	// 权威值覆盖内嵌值
	assert.Equal(t, []string{"Hero Prime"}, enriched.Cast[0].Characters)
	// 关系表对该 (mid, pid) 无记录时内嵌值保留
	assert.Equal(t, []string{}, enriched.Cast[1].Characters)
}

func TestEnrichKeepsEmbeddedWhenNoRelationRows(t *testing.T) {
	builder, repos := newBuilder(t, 500, 1)

	doc, err := builder.BuildDocument("m1")
	require.NoError(t, err)

	// 清空整张角色表：所有内嵌值原样保留
	require.NoError(t, repos.DB.Where("1 = 1").Delete(&model.Character{}).Error)

	enrich := NewEnrichService(repos.Credit)
	enriched, err := enrich.Enrich(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hero", "Villain"}, enriched.Cast[0].Characters)
}

func TestEnrichNilDocument(t *testing.T) {
	_, repos := newBuilder(t, 500, 1)

	enrich := NewEnrichService(repos.Credit)
	doc, err := enrich.Enrich(nil)
	require.NoError(t, err)
	assert.Nil(t, doc)
}
