package engagement

import (
	"reflect"
	"testing"

	"perch/pkg/models"
)

func TestReorderByIDPreservesReferenceOrder(t *testing.T) {
	rows := []models.TagRef{
		{ID: "t3", Name: "three"},
		{ID: "t1", Name: "one"},
	}

	got := reorderByID([]string{"t1", "t2", "t3"}, rows, func(t models.TagRef) string { return t.ID })
	want := []models.TagRef{
		{ID: "t1", Name: "one"},
		{ID: "t3", Name: "three"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestReorderByIDEmptyInput(t *testing.T) {
	got := reorderByID(nil, nil, func(t models.TagRef) string { return t.ID })
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestCollectRefsDeduplicatesAcrossPosts(t *testing.T) {
	posts := []models.Post{
		{TagIDs: []string{"t1", "t2"}, MentionIDs: []string{"u1"}},
		{TagIDs: []string{"t2", "t3"}, MentionIDs: []string{"u1", "u2"}},
		{},
	}

	tagIDs, userIDs := collectRefs(posts)
	if !reflect.DeepEqual(tagIDs, []string{"t1", "t2", "t3"}) {
		t.Fatalf("unexpected tag ids: %v", tagIDs)
	}
	if !reflect.DeepEqual(userIDs, []string{"u1", "u2"}) {
		t.Fatalf("unexpected user ids: %v", userIDs)
	}
}
