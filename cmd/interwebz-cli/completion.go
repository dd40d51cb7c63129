package main

import "fmt"

func completionMain(args []string) {
	shell := "bash"
	if len(args) > 0 && args[0] != "" {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	default:
		log.Fatalf("unsupported shell: %s (use bash or zsh)", shell)
	}
}

const bashCompletion = `
_interwebz_cli_completions()
{
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "exec ping resume history config features completion --config --url --plain --inline --prompt --resume --c --enable --disable" -- "$cur") )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            ;;
        config)
            COMPREPLY=( $(compgen -W "init show path --config --force --c" -- "$cur") )
            ;;
        exec)
            COMPREPLY=( $(compgen -W "--config --url --raw --c" -- "$cur") )
            ;;
        ping)
            COMPREPLY=( $(compgen -W "--config --url --timeout --c" -- "$cur") )
            ;;
        history)
            COMPREPLY=( $(compgen -W "--config --n --c" -- "$cur") )
            ;;
        resume)
            COMPREPLY=( $(compgen -W "--last --list --config --url --plain --inline --prompt --c" -- "$cur") )
            ;;
        *)
            COMPREPLY=( $(compgen -W "--config --url --plain --inline --prompt --resume --c" -- "$cur") )
            ;;
    esac
}
complete -F _interwebz_cli_completions interwebz-cli
`

const zshCompletion = `
#compdef interwebz-cli
_interwebz_cli() {
    local -a subcmds
    subcmds=('exec:send commands as one batch' 'ping:check the proxy endpoint' 'resume:resume a saved session' 'history:print the persisted command history' 'config:init, show or locate the config file' 'features:list feature flags' 'completion:print shell completions')
    if (( CURRENT == 2 )); then
        _describe 'command' subcmds
        return
    fi
    case "$words[2]" in
        completion)
            _values 'shell' bash zsh
            ;;
        config)
            _values 'action' init show path
            ;;
        exec)
            _arguments \
                '--config[Path to config file]' \
                '--url[Proxy endpoint override]' \
                '--raw[Print the raw JSON response]' \
                '--c[Config key=value override]'
            ;;
        ping)
            _arguments \
                '--config[Path to config file]' \
                '--url[Proxy endpoint override]' \
                '--timeout[Timeout seconds]' \
                '--c[Config key=value override]'
            ;;
        resume)
            _arguments \
                '--last[Resume most recent session]' \
                '--list[List saved sessions]' \
                '--config[Path to config file]' \
                '--url[Proxy endpoint override]' \
                '--plain[Line-mode console]' \
                '--prompt[Command to submit on start]'
            ;;
        *)
            _arguments \
                '--config[Path to config file]' \
                '--url[Proxy endpoint override]' \
                '--plain[Line-mode console]' \
                '--inline[Do not use the alt screen]' \
                '--prompt[Command to submit on start]' \
                '--resume[Session id to resume]' \
                '--c[Config key=value override]'
            ;;
    esac
}
_interwebz_cli "$@"
`
