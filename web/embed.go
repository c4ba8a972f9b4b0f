package web

import "embed"

// Static embeds the login and index pages plus their assets.
//
//go:embed static/*
var Static embed.FS
