package handlers

import (
	"fmt"
	"ritual-war/bot"
	"ritual-war/utils"
	"ritual-war/utils/database"
	"runtime"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleStatus reports host health and game totals to the bot owner.
func HandleStatus(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	totalPlayers, _ := database.CountPlayers(b.DB, false)
	alivePlayers, _ := database.CountPlayers(b.DB, true)
	states, _ := database.ListGameStates(b.DB)
	activeGames := 0
	for _, state := range states {
		if !state.Concluded() {
			activeGames++
		}
	}

	var sb strings.Builder
	sb.WriteString("**Ritual War bot status**\n")
	if hostInfo != nil {
		fmt.Fprintf(&sb, "Host: %s (%s), up %s\n", hostInfo.Hostname, hostInfo.Platform, formatUptime(hostInfo.Uptime))
	}
	if len(cpuPercent) > 0 {
		fmt.Fprintf(&sb, "CPU: %d cores, %.1f%% used\n", cpuCount, cpuPercent[0])
	}
	if vm != nil {
		fmt.Fprintf(&sb, "Memory: %.1f%% of %d MB used\n", vm.UsedPercent, vm.Total/1024/1024)
	}
	fmt.Fprintf(&sb, "Goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(&sb, "Guilds tracked: %d (%d active games)\n", len(states), activeGames)
	fmt.Fprintf(&sb, "Players: %d total, %d alive", totalPlayers, alivePlayers)

	utils.SendEphemeralResponse(s, i, sb.String())
}

func formatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	return fmt.Sprintf("%dd%dh", days, hours)
}
