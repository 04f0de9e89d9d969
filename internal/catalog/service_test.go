package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"curator/internal/artwork"
	"curator/internal/platform/aic"
	"curator/internal/platform/httpclient"
	"curator/internal/platform/met"
)

type mockAICClient struct {
	mock.Mock
}

func (m *mockAICClient) GetArtwork(ctx context.Context, id int) (*aic.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aic.Artwork), args.Error(1)
}

func (m *mockAICClient) ListArtworks(ctx context.Context, page, limit int) (*aic.ListResponse, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aic.ListResponse), args.Error(1)
}

func (m *mockAICClient) SearchArtworks(ctx context.Context, query string, limit int) (*aic.ListResponse, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aic.ListResponse), args.Error(1)
}

type mockMetClient struct {
	mock.Mock
}

func (m *mockMetClient) GetObject(ctx context.Context, id int) (*met.Object, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*met.Object), args.Error(1)
}

func (m *mockMetClient) DepartmentObjectIDs(ctx context.Context, departmentID int) (*met.IDList, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*met.IDList), args.Error(1)
}

func (m *mockMetClient) Search(ctx context.Context, query string) (*met.IDList, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*met.IDList), args.Error(1)
}

func TestService_FetchByID(t *testing.T) {
	ctx := context.Background()

	t.Run("aic record is normalized", func(t *testing.T) {
		mAIC := new(mockAICClient)
		s := NewService(mAIC, new(mockMetClient), Config{}, nil)

		year := 1889
		mAIC.On("GetArtwork", ctx, 27992).Return(&aic.Artwork{
			ID: 27992, Title: "Starry Night", ArtistTitle: "Vincent van Gogh", DateEnd: &year,
		}, nil)

		a, err := s.FetchByID(ctx, artwork.Identity{Source: artwork.SourceAIC, ID: 27992})
		require.NoError(t, err)
		assert.Equal(t, "Starry Night", a.Title)
		assert.Equal(t, "Vincent van Gogh", a.Artist())
		mAIC.AssertExpectations(t)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		mMet := new(mockMetClient)
		s := NewService(new(mockAICClient), mMet, Config{}, nil)

		mMet.On("GetObject", ctx, 99).Return(nil, &httpclient.StatusError{URL: "/objects/99", StatusCode: 404})

		_, err := s.FetchByID(ctx, artwork.Identity{Source: artwork.SourceMet, ID: 99})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("record without title maps to ErrNotFound", func(t *testing.T) {
		mMet := new(mockMetClient)
		s := NewService(new(mockAICClient), mMet, Config{}, nil)

		mMet.On("GetObject", ctx, 5).Return(&met.Object{ObjectID: 5}, nil)

		_, err := s.FetchByID(ctx, artwork.Identity{Source: artwork.SourceMet, ID: 5})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, artwork.ErrNormalization)
	})

	t.Run("network failure is not ErrNotFound", func(t *testing.T) {
		mAIC := new(mockAICClient)
		s := NewService(mAIC, new(mockMetClient), Config{}, nil)

		mAIC.On("GetArtwork", ctx, 1).Return(nil, errors.New("connection refused"))

		_, err := s.FetchByID(ctx, artwork.Identity{Source: artwork.SourceAIC, ID: 1})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid identity", func(t *testing.T) {
		s := NewService(new(mockAICClient), new(mockMetClient), Config{}, nil)

		_, err := s.FetchByID(ctx, artwork.Identity{Source: artwork.SourceMet})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Featured(t *testing.T) {
	ctx := context.Background()

	t.Run("aic drops records missing a title", func(t *testing.T) {
		mAIC := new(mockAICClient)
		s := NewService(mAIC, new(mockMetClient), Config{Limit: 12}, nil)

		mAIC.On("ListArtworks", ctx, 1, 12).Return(&aic.ListResponse{Data: []aic.Artwork{
			{ID: 1, Title: "One"},
			{ID: 2},
			{ID: 3, Title: "Three"},
		}}, nil)

		got, err := s.Featured(ctx, artwork.SourceAIC)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 3, got[1].ID)
	})

	t.Run("met fetches the first ids in order and drops imageless objects", func(t *testing.T) {
		mMet := new(mockMetClient)
		s := NewService(new(mockAICClient), mMet, Config{Limit: 3, Concurrency: 2}, nil)

		mMet.On("DepartmentObjectIDs", ctx, met.EuropeanPaintings).Return(&met.IDList{Total: 5, ObjectIDs: []int{10, 11, 12, 13, 14}}, nil)
		mMet.On("GetObject", mock.Anything, 10).Return(&met.Object{ObjectID: 10, Title: "A", PrimaryImage: "a.jpg", AccessionYear: "1975"}, nil)
		mMet.On("GetObject", mock.Anything, 11).Return(&met.Object{ObjectID: 11, Title: "B"}, nil)
		mMet.On("GetObject", mock.Anything, 12).Return(&met.Object{ObjectID: 12, Title: "C", PrimaryImage: "c.jpg"}, nil)

		got, err := s.Featured(ctx, artwork.SourceMet)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 10, got[0].ID)
		assert.Equal(t, 12, got[1].ID)
		year, ok := got[0].Year()
		assert.True(t, ok)
		assert.Equal(t, 1975, year)
		mMet.AssertNotCalled(t, "GetObject", mock.Anything, 13)
	})

	t.Run("met listing fails when one object fails", func(t *testing.T) {
		mMet := new(mockMetClient)
		s := NewService(new(mockAICClient), mMet, Config{Limit: 2, Concurrency: 1}, nil)

		mMet.On("DepartmentObjectIDs", ctx, met.EuropeanPaintings).Return(&met.IDList{ObjectIDs: []int{1, 2}}, nil)
		mMet.On("GetObject", mock.Anything, 1).Return(nil, errors.New("timeout")).Maybe()
		mMet.On("GetObject", mock.Anything, 2).Return(&met.Object{ObjectID: 2, Title: "B", PrimaryImage: "b.jpg"}, nil).Maybe()

		_, err := s.Featured(ctx, artwork.SourceMet)
		assert.Error(t, err)
	})

	t.Run("unknown source", func(t *testing.T) {
		s := NewService(new(mockAICClient), new(mockMetClient), Config{}, nil)

		_, err := s.Featured(ctx, artwork.Source("louvre"))
		assert.ErrorIs(t, err, artwork.ErrUnknownSource)
	})
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("aic", func(t *testing.T) {
		mAIC := new(mockAICClient)
		s := NewService(mAIC, new(mockMetClient), Config{Limit: 20}, nil)

		mAIC.On("SearchArtworks", ctx, "monet", 20).Return(&aic.ListResponse{Data: []aic.Artwork{{ID: 7, Title: "Water Lilies"}}}, nil)

		got, err := s.Search(ctx, artwork.SourceAIC, "monet")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Water Lilies", got[0].Title)
	})

	t.Run("met with no matches", func(t *testing.T) {
		mMet := new(mockMetClient)
		s := NewService(new(mockAICClient), mMet, Config{}, nil)

		mMet.On("Search", ctx, "zzz").Return(&met.IDList{Total: 0}, nil)

		got, err := s.Search(ctx, artwork.SourceMet, "zzz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("upstream error", func(t *testing.T) {
		mMet := new(mockMetClient)
		s := NewService(new(mockAICClient), mMet, Config{}, nil)

		mMet.On("Search", ctx, "x").Return(nil, errors.New("boom"))

		_, err := s.Search(ctx, artwork.SourceMet, "x")
		assert.Error(t, err)
	})
}
