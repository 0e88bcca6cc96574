package identity

// Scope is a Discord OAuth2 scope token as it appears in the authorize URL.
type Scope string

const (
	ScopeIdentify                       Scope = "identify"
	ScopeGuilds                         Scope = "guilds"
	ScopeEmail                          Scope = "email"
	ScopeGuildsChannelsRead             Scope = "guilds.channels.read"
	ScopeGuildsJoin                     Scope = "guilds.join"
	ScopeGuildsMembersRead              Scope = "guilds.members.read"
	ScopeBot                            Scope = "bot"
	ScopeConnections                    Scope = "connections"
	ScopeOpenid                         Scope = "openid"
	ScopeRPC                            Scope = "rpc"
	ScopeRPCVoiceRead                   Scope = "rpc.voice.read"
	ScopeRPCVoiceWrite                  Scope = "rpc.voice.write"
	ScopeRPCVideoRead                   Scope = "rpc.video.read"
	ScopeRPCVideoWrite                  Scope = "rpc.video.write"
	ScopeRPCScreenshareRead             Scope = "rpc.screenshare.read"
	ScopeRPCScreenshareWrite            Scope = "rpc.screenshare.write"
	ScopeRPCActivitiesWrite             Scope = "rpc.activities.write"
	ScopeRPCNotificationsRead           Scope = "rpc.notifications.read"
	ScopeWebhookIncoming                Scope = "webhook.incoming"
	ScopeApplicationsBuildsRead         Scope = "applications.builds.read"
	ScopeApplicationsBuildsUpload       Scope = "applications.builds.upload"
	ScopeApplicationsCommands           Scope = "applications.commands"
	ScopeApplicationsCommandsPermsUpd   Scope = "applications.commands.permissions.update"
	ScopeApplicationsEntitlements       Scope = "applications.entitlements"
	ScopeApplicationsStoreUpdate        Scope = "applications.store.update"
	ScopeActivitiesRead                 Scope = "activities.read"
	ScopeActivitiesWrite                Scope = "activities.write"
	ScopeActivitiesInvitesWrite         Scope = "activities.invites.write"
	ScopeDMChannelsRead                 Scope = "dm_channels.read"
	ScopeDMChannelsMessagesRead         Scope = "dm_channels.messages.read"
	ScopeDMChannelsMessagesWrite        Scope = "dm_channels.messages.write"
	ScopeGDMJoin                        Scope = "gdm.join"
	ScopeMessagesRead                   Scope = "messages.read"
	ScopePresencesRead                  Scope = "presences.read"
	ScopePresencesWrite                 Scope = "presences.write"
	ScopeRelationshipsRead              Scope = "relationships.read"
	ScopeRelationshipsWrite             Scope = "relationships.write"
	ScopeRoleConnectionsWrite           Scope = "role_connections.write"
	ScopeVoice                          Scope = "voice"
	ScopePaymentSourcesCountryCode      Scope = "payment_sources.country_code"
	ScopeAccountGlobalNameUpdate        Scope = "account.global_name.update"
	ScopeSDKSocialLayer                 Scope = "sdk.social_layer"
	ScopeLobbiesWrite                   Scope = "lobbies.write"
)

// SessionScopes are the scopes requested on every dashboard login.
var SessionScopes = []Scope{ScopeIdentify, ScopeGuilds, ScopeEmail}
