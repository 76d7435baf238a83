package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newSettingsCmd(a *app) *cobra.Command {
	var (
		name, job           string
		sound               bool
		volume, musicVolume int
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the player name, job and sound settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			flags := cmd.Flags()
			if flags.Changed("name") {
				svc.SetName(ctx, name)
			}
			if flags.Changed("job") {
				svc.SetJob(ctx, job)
			}
			if flags.Changed("sound") || flags.Changed("volume") || flags.Changed("music-volume") {
				svc.UpdateSettings(ctx, func(s *engine.Settings) {
					if flags.Changed("sound") {
						s.SoundEnabled = sound
					}
					if flags.Changed("volume") {
						s.Volume = engine.Percent(volume)
					}
					if flags.Changed("music-volume") {
						s.MusicVolume = engine.Percent(musicVolume)
					}
				})
			}

			st := svc.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("Name", st.Player.Name))
			fmt.Fprintln(out, ui.LabelValue("Job", st.Player.Job))
			fmt.Fprintln(out, ui.LabelValue("Sound", onOff(st.Settings.SoundEnabled)))
			fmt.Fprintln(out, ui.LabelValue("Volume", fmt.Sprintf("%d%%", st.Settings.Volume)))
			fmt.Fprintln(out, ui.LabelValue("Music volume", fmt.Sprintf("%d%%", st.Settings.MusicVolume)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (empty resets to the default)")
	cmd.Flags().StringVar(&job, "job", "", "Job line (empty resets to the default)")
	cmd.Flags().BoolVar(&sound, "sound", true, "Enable sound effects")
	cmd.Flags().IntVar(&volume, "volume", engine.DefaultVolume, "Effects volume 0-100")
	cmd.Flags().IntVar(&musicVolume, "music-volume", engine.DefaultMusicVolume, "Music volume 0-100")
	return cmd
}

func onOff(v bool) string {
	if v {
		return ui.Good.Render("on")
	}
	return ui.Muted.Render("off")
}
