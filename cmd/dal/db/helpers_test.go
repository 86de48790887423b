package db

import "VideoTube.com/pkg/store"

func storeUpdate(add, pull map[string]any) store.Update {
	return store.Update{AddToSet: add, Pull: pull}
}
