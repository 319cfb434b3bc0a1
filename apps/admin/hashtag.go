package main

import (
	"fmt"

	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
)

func (cli *commandLine) hashtag(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	switch args[0] {
	case "encode":
		encodeCmd := cli.newFlagSet("hashtag encode")
		category := encodeCmd.String("category", "", "The event category.")
		title := encodeCmd.String("title", "", "The event title; the name is derived from it.")
		name := encodeCmd.String("name", "", "The event name, used as is (overrides -title).")
		start := encodeCmd.String("start", "", "The first day of the event (DD-MM-YYYY).")
		end := encodeCmd.String("end", "", "The last day of the event (DD-MM-YYYY).")
		if err := parse(encodeCmd, args[1:]); err != nil {
			return err
		}
		if *category == "" || (*title == "" && *name == "") || *start == "" || *end == "" {
			encodeCmd.Usage()
			return errHelp
		}

		tag, err := hashtag.New(*category, *title, *start, *end, cli.conf.Announcement.NameMaxLen)
		if err != nil {
			return err
		}
		if *name != "" {
			tag.Name = *name
		}
		tagStr, err := hashtag.Encode(tag)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cli.out, tagStr)
		return err

	case "decode":
		if len(args) != 2 {
			cli.printUsage()
			return errHelp
		}
		tag, err := hashtag.Decode(args[1])
		if err != nil {
			return err
		}
		if !isTerminalFunc() {
			return cli.printJSON(tag)
		}
		_, err = fmt.Fprintf(cli.out, "Category: %s\nName:     %s\nStart:    %s\nEnd:      %s\nDays:     %d\n",
			tag.Category, tag.Name, hashtag.FormatDate(tag.Start), hashtag.FormatDate(tag.End), tag.Days())
		return err

	default:
		cli.printUsage()
		return errHelp
	}
}
