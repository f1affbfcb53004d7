package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/solscripts/internal/adapters/accounts"
	"github.com/trebuchet-org/solscripts/internal/adapters/anvil"
	"github.com/trebuchet-org/solscripts/internal/adapters/artifacts"
	"github.com/trebuchet-org/solscripts/internal/adapters/chain"
	internalconfig "github.com/trebuchet-org/solscripts/internal/adapters/config"
	"github.com/trebuchet-org/solscripts/internal/adapters/fs"
	"github.com/trebuchet-org/solscripts/internal/adapters/interactive"
	"github.com/trebuchet-org/solscripts/internal/adapters/progress"
	"github.com/trebuchet-org/solscripts/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	deployments.ProvideFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	artifacts.ProvideLoader,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Loader)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// ChainSet provides the JSON-RPC connection and signers
var ChainSet = wire.NewSet(
	chain.NewDialer,
	wire.Bind(new(usecase.ChainDialer), new(*chain.Dialer)),

	accounts.NewProvider,
	wire.Bind(new(usecase.AccountProvider), new(*accounts.Provider)),
)

// AnvilSet provides the local node manager
var AnvilSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.AnvilManager), new(*anvil.Manager)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// ProgressSet provides the progress sink
var ProgressSet = wire.NewSet(
	progress.ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ChainSet,
	AnvilSet,
	InteractiveSet,
	ConfigSet,
	ProgressSet,
)
