// Copyright (c) Choko (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Favorites struct {
	// TimeoutSeconds bounds the remote updates of a single favorite
	// toggle so a stuck call cannot leave the control disabled.
	TimeoutSeconds int `koanf:"timeoutseconds"`
}

type Config struct {
	config.Common

	// Favorites is the configuration for favorite toggling.
	Favorites Favorites `koanf:"favorites"`
}
