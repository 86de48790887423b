package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/paginate"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
)

type PlaylistService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewPlaylistService(ctx context.Context, d *deps.Deps) *PlaylistService {
	return &PlaylistService{ctx: ctx, d: d}
}

func (service *PlaylistService) CreatePlaylist(actor, name, description string) (pipeline.Doc, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errno.MalformedInputErr.WithMessage("Playlist name is required")
	}
	now := time.Now()
	playlist := &model.Playlist{
		ID:          utils.NewObjectID(),
		Owner:       actor,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	doc := playlist.ToDoc()
	if err := service.d.Store.Insert(service.ctx, model.Playlists, doc); err != nil {
		return nil, deps.StoreErr(service.ctx, "creating the playlist", err)
	}
	return doc, nil
}

func (service *PlaylistService) UserPlaylists(userID, page, limit string) (*paginate.Page, error) {
	if err := deps.ValidID(userID, "user"); err != nil {
		return nil, err
	}
	if err := service.d.MustExist(service.ctx, model.Users, userID, "user"); err != nil {
		return nil, err
	}
	p, err := paginate.Paginate(service.ctx, service.d.Store, pipelines.UserPlaylists(userID),
		paginate.ParseQuery(page, limit, paginate.DefaultLimit))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the playlists", err)
	}
	return p, nil
}

// GetPlaylist returns the playlist with its published videos in playlist order.
func (service *PlaylistService) GetPlaylist(playlistID string) (pipeline.Doc, error) {
	if err := deps.ValidID(playlistID, "playlist"); err != nil {
		return nil, err
	}
	docs, err := service.d.Store.Aggregate(service.ctx, pipelines.PlaylistDetail(playlistID))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the playlist", err)
	}
	if len(docs) == 0 {
		return nil, errno.NotFoundErr.WithMessage("Playlist not found")
	}
	return docs[0], nil
}

func (service *PlaylistService) UpdatePlaylist(actor, playlistID, name, description string) (pipeline.Doc, error) {
	if err := deps.ValidID(playlistID, "playlist"); err != nil {
		return nil, err
	}
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, errno.MalformedInputErr.WithMessage("Name or description is required")
	}
	if _, err := service.d.Owned(service.ctx, model.Playlists, playlistID, actor, "playlist"); err != nil {
		return nil, err
	}
	set := pipeline.Doc{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if description != "" {
		set["description"] = description
	}
	return service.update(playlistID, store.Update{Set: set})
}

func (service *PlaylistService) DeletePlaylist(actor, playlistID string) (pipeline.Doc, error) {
	if err := deps.ValidID(playlistID, "playlist"); err != nil {
		return nil, err
	}
	playlist, err := service.d.Owned(service.ctx, model.Playlists, playlistID, actor, "playlist")
	if err != nil {
		return nil, err
	}
	if _, err = service.d.Store.DeleteOne(service.ctx, model.Playlists, pipeline.Eq("id", playlistID)); err != nil {
		return nil, deps.StoreErr(service.ctx, "deleting the playlist", err)
	}
	return playlist, nil
}

// AddVideo appends videoID unless the playlist already holds it.
func (service *PlaylistService) AddVideo(actor, playlistID, videoID string) (pipeline.Doc, error) {
	if err := service.checkPair(playlistID, videoID); err != nil {
		return nil, err
	}
	if _, err := service.d.Owned(service.ctx, model.Playlists, playlistID, actor, "playlist"); err != nil {
		return nil, err
	}
	if err := service.d.MustExist(service.ctx, model.Videos, videoID, "video"); err != nil {
		return nil, err
	}
	doc, err := service.update(playlistID, store.Update{
		AddToSet: map[string]any{"videos": videoID},
		Set:      pipeline.Doc{"updated_at": time.Now()},
	})
	if err == nil {
		service.d.Publish(service.ctx, mq.NewEvent(mq.PlaylistChanged, actor, playlistID, true))
	}
	return doc, err
}

func (service *PlaylistService) RemoveVideo(actor, playlistID, videoID string) (pipeline.Doc, error) {
	if err := service.checkPair(playlistID, videoID); err != nil {
		return nil, err
	}
	if _, err := service.d.Owned(service.ctx, model.Playlists, playlistID, actor, "playlist"); err != nil {
		return nil, err
	}
	doc, err := service.update(playlistID, store.Update{
		Pull: map[string]any{"videos": videoID},
		Set:  pipeline.Doc{"updated_at": time.Now()},
	})
	if err == nil {
		service.d.Publish(service.ctx, mq.NewEvent(mq.PlaylistChanged, actor, playlistID, false))
	}
	return doc, err
}

func (service *PlaylistService) checkPair(playlistID, videoID string) error {
	if err := deps.ValidID(playlistID, "playlist"); err != nil {
		return err
	}
	return deps.ValidID(videoID, "video")
}

func (service *PlaylistService) update(playlistID string, upd store.Update) (pipeline.Doc, error) {
	doc, err := service.d.Store.UpdateOne(service.ctx, model.Playlists, pipeline.Eq("id", playlistID), upd)
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "updating the playlist", err)
	}
	return doc, nil
}
